package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlexZinkM/warthog-wallet/internal/config"
	"github.com/AlexZinkM/warthog-wallet/internal/crypto"
	"github.com/AlexZinkM/warthog-wallet/internal/model"
	"github.com/AlexZinkM/warthog-wallet/warthog"

	"github.com/spf13/cobra"
)

const downloadFile = "warthog_wallet.txt"

// pendingFlags control what happens to a freshly created wallet
type pendingFlags struct {
	save bool
	out  string
}

func (f *pendingFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.save, "save", false, "Encrypt and store the wallet (you consent to local storage)")
	cmd.Flags().StringVar(&f.out, "out", "", "Also write the encrypted wallet to this file, e.g. "+downloadFile)
}

// finish prints the new wallet, then saves and/or writes it as requested
func (f *pendingFlags) finish(a *app, km *model.KeyMaterial) error {
	if km.Mnemonic != "" {
		path, _ := warthog.DerivationPath(km.PathType)
		fmt.Printf("Mnemonic (%d words, %s): %s\n", km.WordCount, path, km.Mnemonic)
	}
	fmt.Println("Private key:", km.PrivateKey)
	fmt.Println("Public key: ", km.PublicKey)
	fmt.Println("Address:    ", km.Address)

	if !f.save && f.out == "" {
		fmt.Fprintln(os.Stderr, "Wallet not saved: use --save or --out to keep it.")
		return nil
	}

	password, err := config.ReadNewPassword("New wallet password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	if f.out != "" {
		if err := writeBlob(a, f.out, password); err != nil {
			return err
		}
	}
	if f.save {
		if _, err := a.session.Save(password, true); err != nil {
			return err
		}
		fmt.Println("Wallet saved to", config.GetWalletStorePath())
	}
	return nil
}

func writeBlob(a *app, path string, password []byte) error {
	blob, err := a.session.Download(password)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Println("Encrypted wallet written to", path)
	return nil
}

func generateCmd() *cobra.Command {
	var (
		words    int
		pathType string
		flags    pendingFlags
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create a new mnemonic wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			km, err := a.session.Handle(warthog.GenerateRequest{WordCount: words, PathType: model.PathType(pathType)})
			if err != nil {
				return err
			}
			return flags.finish(a, km)
		},
	}
	cmd.Flags().IntVar(&words, "words", 12, "Mnemonic length: 12 or 24")
	cmd.Flags().StringVar(&pathType, "path", string(model.PathHardened), "Derivation path: hardened or non-hardened")
	flags.register(cmd)
	return cmd
}

func deriveCmd() *cobra.Command {
	var (
		words    int
		pathType string
		flags    pendingFlags
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Restore a wallet from its mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			mnemonic, err := config.ReadPassword("Mnemonic: ")
			if err != nil {
				return err
			}
			defer clear(mnemonic)

			km, err := a.session.Handle(warthog.DeriveRequest{
				Mnemonic:  string(mnemonic),
				WordCount: words,
				PathType:  model.PathType(pathType),
			})
			if err != nil {
				return err
			}
			return flags.finish(a, km)
		},
	}
	cmd.Flags().IntVar(&words, "words", 12, "Mnemonic length: 12 or 24")
	cmd.Flags().StringVar(&pathType, "path", string(model.PathHardened), "Derivation path: hardened or non-hardened")
	flags.register(cmd)
	return cmd
}

func importCmd() *cobra.Command {
	var flags pendingFlags
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restore a wallet from a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			key, err := config.ReadPassword("Private key (hex): ")
			if err != nil {
				return err
			}
			defer clear(key)

			km, err := a.session.Handle(warthog.ImportRequest{PrivateKey: string(key)})
			if err != nil {
				return err
			}
			return flags.finish(a, km)
		},
	}
	flags.register(cmd)
	return cmd
}

// readBlobFile returns the trimmed contents of path, or "" when path is empty
func readBlobFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read wallet file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// unlock activates the wallet from file, or from the store when file is empty
func unlock(a *app, file string) error {
	blob, err := readBlobFile(file)
	if err != nil {
		return err
	}
	password, err := config.ReadPassword("Wallet password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	_, err = a.session.Handle(warthog.LoginRequest{Blob: blob, Password: password})
	return err
}

func unlockCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Decrypt the stored wallet, or a wallet file, and show its address",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := unlock(a, file); err != nil {
				return err
			}
			w := a.session.Wallet()
			fmt.Println("Public key:", w.PublicKey)
			fmt.Println("Address:   ", w.Address)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Encrypted wallet file instead of the stored wallet")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <address>",
		Short: "Check a Warthog address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := warthog.ValidateAddress(strings.TrimSpace(args[0]))
			if err := printJSON(res); err != nil {
				return err
			}
			if !res.Valid {
				return &model.InvalidAddressError{Address: args[0]}
			}
			return nil
		},
	}
}

// rekeyCmd re-encrypts a wallet under a new password, and with the configured scrypt cost
func rekeyCmd() *cobra.Command {
	var (
		file string
		out  string
	)
	cmd := &cobra.Command{
		Use:   "rekey",
		Short: "Change the password of the stored wallet or a wallet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			blob, err := readBlobFile(file)
			if err != nil {
				return err
			}
			if blob == "" {
				if blob, err = a.store.Load(); err != nil {
					return err
				}
			}

			oldPassword, err := config.ReadPassword("Current password: ")
			if err != nil {
				return err
			}
			defer clear(oldPassword)

			wallet, err := crypto.DecryptWallet(blob, oldPassword)
			if err != nil {
				return err
			}

			newPassword, err := config.ReadNewPassword("New password: ")
			if err != nil {
				return err
			}
			defer clear(newPassword)

			cfg := config.Get()
			rekeyed, err := crypto.EncryptWallet(wallet, newPassword, crypto.Params{N: cfg.ScryptN, R: cfg.ScryptR, P: cfg.ScryptP})
			if err != nil {
				return err
			}

			// Files are rewritten in place unless --out says otherwise
			target := out
			if target == "" {
				target = file
			}
			if target == "" {
				if err := a.store.Save(rekeyed); err != nil {
					return err
				}
				fmt.Println("Stored wallet re-encrypted:", wallet.Address)
				return nil
			}
			if err := os.WriteFile(target, []byte(rekeyed), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			fmt.Println("Wallet re-encrypted to", target)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Encrypted wallet file instead of the stored wallet")
	cmd.Flags().StringVar(&out, "out", "", "Write the result here instead of overwriting the source")
	return cmd
}

func clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete the stored wallet without --yes")
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.Clear(); err != nil {
				return err
			}
			fmt.Println("Stored wallet deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
