package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func resetViperForTest() {
	viper.Reset()
	bindFlags()
}

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name      string
		shorthand string
	}{
		{"device", "d"},
		{"frequency", "f"},
		{"tick", "t"},
		{"debug", "D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Errorf("flag %q not found", tt.name)
				return
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("flag %q shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
			}
		})
	}
}

func TestRootCmd_Properties(t *testing.T) {
	if rootCmd.Use != "morsecoder" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "morsecoder")
	}
	if rootCmd.Short == "" {
		t.Error("rootCmd.Short is empty")
	}
	if rootCmd.Long == "" {
		t.Error("rootCmd.Long is empty")
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	expected := []string{
		"encode",
		"decode",
		"signal",
		"fromsignal",
		"classify",
		"tokens",
		"tables",
		"play",
	}

	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			for _, sub := range rootCmd.Commands() {
				if sub.Name() == name {
					return
				}
			}
			t.Errorf("subcommand %q not registered", name)
		})
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	resetViperForTest()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("Execute() with --help error = %v", err)
	}

	output := buf.String()
	if !bytes.Contains([]byte(output), []byte("morsecoder")) {
		t.Errorf("help output should contain 'morsecoder'")
	}
	if !bytes.Contains([]byte(output), []byte("--device")) {
		t.Errorf("help output should contain '--device'")
	}
	if !bytes.Contains([]byte(output), []byte("encode")) {
		t.Errorf("help output should list the encode subcommand")
	}
	if !bytes.Contains([]byte(output), []byte("play")) {
		t.Errorf("help output should list the play subcommand")
	}
}

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	resetViperForTest()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("Execute() without args error = %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("Usage:")) {
		t.Errorf("output should contain usage, got: %s", buf.String())
	}
}

func TestRootCmd_FlagDefaults(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	tests := []struct {
		name         string
		defaultValue string
	}{
		{"device", "-1"},
		{"frequency", "880"},
		{"tick", "200ms"},
		{"debug", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := flags.Lookup(tt.name)
			if flag == nil {
				t.Fatalf("flag %q not found", tt.name)
			}
			if flag.DefValue != tt.defaultValue {
				t.Errorf("flag %q default = %q, want %q", tt.name, flag.DefValue, tt.defaultValue)
			}
		})
	}
}

func TestRootCmd_FlagDescriptions(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	flagsToCheck := []string{"device", "frequency", "tick", "debug"}

	for _, name := range flagsToCheck {
		t.Run(name, func(t *testing.T) {
			flag := flags.Lookup(name)
			if flag == nil {
				t.Fatalf("flag %q not found", name)
			}
			if flag.Usage == "" {
				t.Errorf("flag %q has no description", name)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	resetViperForTest()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

	// Should not exit; creates the default config on first run
	initConfig()

	if viper.GetString("dot") != "." {
		t.Errorf("viper.GetString(dot) = %q, want %q", viper.GetString("dot"), ".")
	}
	if viper.GetInt("word_timing") != 7 {
		t.Errorf("viper.GetInt(word_timing) = %d, want 7", viper.GetInt("word_timing"))
	}
}
