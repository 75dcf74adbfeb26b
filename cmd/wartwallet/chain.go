package main

import (
	"fmt"

	"github.com/AlexZinkM/warthog-wallet/internal/model"

	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show balance and next nonce of the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := unlock(a, file); err != nil {
				return err
			}
			state, err := a.session.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(model.BalanceResponse{ChainState: state, Node: a.session.NodeURL()})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Encrypted wallet file instead of the stored wallet")
	return cmd
}

func sendCmd() *cobra.Command {
	var (
		file string
		req  model.SendRequest
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Sign and send WART",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := unlock(a, file); err != nil {
				return err
			}
			state, err := a.session.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Sending %s WART (fee %s) from %s, balance %s\n", req.Amount, req.Fee, state.Address, state.Balance)

			resp, err := a.session.Send(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Encrypted wallet file instead of the stored wallet")
	cmd.Flags().StringVar(&req.ToAddr, "to", "", "Recipient address")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "Amount in WART")
	cmd.Flags().StringVar(&req.Fee, "fee", "", "Fee in WART, rounded by the node")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("fee")
	return cmd
}
