package config

import (
	"os"
	"slices"
	"testing"
	"time"
)

func TestInitDefaults(t *testing.T) {
	// envconfig only applies defaults to unset variables
	for _, k := range []string{"PORT", "WARTHOG_NODE_URL", "WARTHOG_NODES", "SCRYPT_N", "SCRYPT_R", "SCRYPT_P", "NODE_TIMEOUT", "NODE_RATE_LIMIT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg = nil

	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	c := Get()
	if c.Port != "8080" || c.NodeURL != "https://node.wartscan.io" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if len(c.Nodes) != 5 {
		t.Fatalf("expected 5 default nodes, got %v", c.Nodes)
	}
	if c.ScryptN != 1<<18 || c.ScryptR != 8 || c.ScryptP != 1 {
		t.Fatalf("unexpected scrypt params %d/%d/%d", c.ScryptN, c.ScryptR, c.ScryptP)
	}
	if c.NodeTimeout != 15*time.Second || c.NodeRateLimit != 5 {
		t.Fatalf("unexpected node settings: %v %v", c.NodeTimeout, c.NodeRateLimit)
	}
	if !slices.Contains(GetNodes(), "http://62.72.44.89:3001") {
		t.Fatalf("default node missing: %v", GetNodes())
	}
}

func TestInitAddsSelectedNode(t *testing.T) {
	t.Setenv("WARTHOG_NODE_URL", "http://localhost:3001/")
	t.Setenv("WARTHOG_NODES", "https://node.wartscan.io")
	cfg = nil

	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if GetNodeURL() != "http://localhost:3001" {
		t.Fatalf("node url = %q", GetNodeURL())
	}
	if !slices.Contains(GetNodes(), "http://localhost:3001") || len(GetNodes()) != 2 {
		t.Fatalf("nodes = %v", GetNodes())
	}
}

func TestInitRejectsBadScryptN(t *testing.T) {
	t.Setenv("SCRYPT_N", "1000")
	cfg = nil
	if err := Init(); err == nil {
		t.Fatal("expected error for non power of two N")
	}
}
