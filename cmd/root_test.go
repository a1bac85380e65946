package cmd

import (
	"testing"
)

func TestResolveBaseURLPrecedence(t *testing.T) {
	t.Setenv("SCRIBE_API_URL", "")

	tests := []struct {
		name string
		flag string
		env  string
		cfg  configFile
		want string
	}{
		{
			name: "default when nothing is set",
			want: "http://localhost:8000",
		},
		{
			name: "config file beats default",
			cfg:  configFile{APIURL: "https://cfg.example.com"},
			want: "https://cfg.example.com",
		},
		{
			name: "environment beats config file",
			env:  "https://env.example.com",
			cfg:  configFile{APIURL: "https://cfg.example.com"},
			want: "https://env.example.com",
		},
		{
			name: "flag beats everything",
			flag: "https://flag.example.com",
			env:  "https://env.example.com",
			cfg:  configFile{APIURL: "https://cfg.example.com"},
			want: "https://flag.example.com",
		},
		{
			name: "trailing slash is trimmed",
			flag: "https://flag.example.com/",
			want: "https://flag.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SCRIBE_API_URL", tt.env)
			got := resolveBaseURL(tt.flag, tt.cfg)
			if got != tt.want {
				t.Errorf("resolveBaseURL(%q, %+v) = %q, want %q", tt.flag, tt.cfg, got, tt.want)
			}
		})
	}
}

func TestBuildSelectionRequiresInput(t *testing.T) {
	uploadStdin = false
	if _, err := buildSelection(nil); err == nil {
		t.Error("expected an error when no file and no --stdin given")
	}

	uploadStdin = true
	defer func() { uploadStdin = false }()
	if _, err := buildSelection([]string{"a.mp3"}); err == nil {
		t.Error("expected an error combining --stdin with a file argument")
	}
}
