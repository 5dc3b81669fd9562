package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadEmitterConfig(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		env       map[string]string
		want      EmitterConfig
		wantError string
	}{
		{
			name: "defaults",
			args: []string{},
			env:  map[string]string{},
			want: EmitterConfig{Host: defaultStatsdHost, Port: defaultStatsdPort, Rate: defaultSampleRate},
		},
		{
			name: "only flags",
			args: []string{"-t", "stats.example.com", "-p", "9125", "-r", "0.5"},
			env:  map[string]string{},
			want: EmitterConfig{Host: "stats.example.com", Port: 9125, Rate: 0.5},
		},
		{
			name: "env overrides flags",
			args: []string{"-t", "flag-ignored", "-p", "1", "-r", "0.9"},
			env: map[string]string{
				"STATSD_HOST": "env-host",
				"STATSD_PORT": "8225",
				"SAMPLE_RATE": "0.25",
			},
			want: EmitterConfig{Host: "env-host", Port: 8225, Rate: 0.25},
		},
		{
			name: "env fallback",
			args: []string{},
			env:  map[string]string{"STATSD_HOST": "10.0.0.1"},
			want: EmitterConfig{Host: "10.0.0.1", Port: defaultStatsdPort, Rate: defaultSampleRate},
		},
		{
			name: "sys seconds from flag",
			args: []string{"-s", "30"},
			env:  map[string]string{},
			want: EmitterConfig{
				Host:   defaultStatsdHost,
				Port:   defaultStatsdPort,
				Rate:   defaultSampleRate,
				SysFor: 30 * time.Second,
			},
		},
		{
			name: "sys seconds env overrides flag",
			args: []string{"-s", "30"},
			env:  map[string]string{"SYS_SECONDS": "5"},
			want: EmitterConfig{
				Host:   defaultStatsdHost,
				Port:   defaultStatsdPort,
				Rate:   defaultSampleRate,
				SysFor: 5 * time.Second,
			},
		},
		{
			name:      "port out of range",
			args:      []string{"-p", "70000"},
			env:       map[string]string{},
			wantError: "port out of range",
		},
		{
			name:      "rate out of range",
			args:      []string{"-r", "1.5"},
			env:       map[string]string{},
			wantError: "sample rate",
		},
		{
			name:      "bad flag",
			args:      []string{"-zzz"},
			env:       map[string]string{},
			wantError: "flag provided but not defined",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			got, err := LoadEmitterConfig(tc.args, nil)
			if tc.wantError != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantError) {
					t.Fatalf("error = %v, want substring %q", err, tc.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadEmitterConfig: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
