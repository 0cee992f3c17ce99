package main

import (
	"errors"
	"testing"

	"github.com/nao1215/clausediff/internal/config"
)

func TestNewServeCmd(t *testing.T) {
	t.Parallel()

	cmd := NewServeCmd()
	flags := []struct {
		name string
		def  string
	}{
		{name: "listen", def: config.DefaultListenAddr},
		{name: "max-upload-size", def: "52428800"},
		{name: "staging-max-age", def: "1h0m0s"},
		{name: "staging-dir", def: ""},
		{name: "json-log", def: "false"},
		{name: "assignment", def: config.DefaultAssignmentMode},
	}
	for _, f := range flags {
		flag := cmd.Flags().Lookup(f.name)
		if flag == nil {
			t.Errorf("expected %s flag", f.name)
			continue
		}
		if flag.DefValue != f.def {
			t.Errorf("%s: expected default %q, got %q", f.name, f.def, flag.DefValue)
		}
	}
}

// TestRunServeCmdInvalidConfig checks that bad settings fail before the
// server starts listening.
func TestRunServeCmdInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "zero upload size", args: []string{"--max-upload-size", "0"}, wantErr: config.ErrInvalidMaxUploadSize},
		{name: "negative staging age", args: []string{"--staging-max-age", "-1m"}, wantErr: config.ErrInvalidStagingMaxAge},
		{name: "unknown engine", args: []string{"--engine", "ghostscript"}, wantErr: config.ErrUnknownEngine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			args := append([]string{"serve", "-c", env.config}, tt.args...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
