package cmd

import (
	"bytes"
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "teamsync" {
		t.Errorf("Expected Use = teamsync, got %s", rootCmd.Use)
	}

	syncCmdFound := false
	validateCmdFound := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "sync" {
			syncCmdFound = true
		}
		if cmd.Name() == "validate" {
			validateCmdFound = true
		}
	}

	if !syncCmdFound {
		t.Error("sync command not found in root command")
	}

	if !validateCmdFound {
		t.Error("validate command not found in root command")
	}
}

func TestRootCommandHelp(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("Failed to execute help command: %v", err)
	}

	output := buf.String()
	if !bytes.Contains([]byte(output), []byte("teamsync")) {
		t.Error("Help output doesn't contain command name")
	}

	if !bytes.Contains([]byte(output), []byte("sync")) {
		t.Error("Help output doesn't contain sync subcommand")
	}

	if !bytes.Contains([]byte(output), []byte("validate")) {
		t.Error("Help output doesn't contain validate subcommand")
	}
}

func TestRootCommandDebugFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("debug flag not registered")
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected debug flag default false, got %s", flag.DefValue)
	}
}
