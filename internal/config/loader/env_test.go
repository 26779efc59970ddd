package loader

import (
	"reflect"
	"testing"
)

func environ(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("LAYERKEYS_").WithEnviron(environ(
		"LAYERKEYS_LOG_LEVEL=debug",
		"LAYERKEYS_KEYMAP=/tmp/keys.yaml",
		"LAYERKEYS_DISPATCHER_RECOVER_FROM_PANIC=false",
		"LAYERKEYS_FLATTEN_CHANNELS=BaseColor,Height",
		"HOME=/root",
	))

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"keymap.file", "/tmp/keys.yaml"},
		{"dispatcher.recover_from_panic", false},
		{"flatten.channels", []any{"BaseColor", "Height"}},
	}
	for _, tt := range tests {
		got, ok := GetByPath(config, tt.path)
		if !ok {
			t.Errorf("%s missing", tt.path)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s = %#v, want %#v", tt.path, got, tt.want)
		}
	}

	if _, ok := config["home"]; ok {
		t.Error("unprefixed variable was loaded")
	}
}

func TestEnvLoader_Sections(t *testing.T) {
	l := NewEnvLoader("LAYERKEYS_").
		WithSections("bake").
		WithEnviron(environ(
			"LAYERKEYS_CONFIG=/etc/layerkeys.toml",
			"LAYERKEYS_BAKE_SWITCH_TO_PAINT=no",
			"LAYERKEYS_LOG_LEVEL=warn",
		))

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := config["config"]; ok {
		t.Error("variable outside the accepted sections was loaded")
	}
	if v, _ := GetByPath(config, "bake.switch_to_paint"); v != false {
		t.Errorf("bake.switch_to_paint = %v, want false", v)
	}
	if v, _ := GetByPath(config, "logging.level"); v != "warn" {
		t.Errorf("logging.level = %v, want warn", v)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("LAYERKEYS_")

	tests := []struct {
		env    string
		want   string
		wantOK bool
	}{
		{"LAYERKEYS_METRICS_ADDR", "metrics.addr", true},
		{"LAYERKEYS_BAKE_MESH_MAPS", "bake.mesh_maps", true},
		{"LAYERKEYS_DISPATCHER_DISABLED_ACTIONS", "dispatcher.disabled_actions", true},
		{"LAYERKEYS_VERBOSE", "", false},
		{"LAYERKEYS__X", "", false},
	}
	for _, tt := range tests {
		got, ok := l.envToPath(tt.env)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("envToPath(%q) = %q, %v, want %q, %v", tt.env, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"0.5", 0.5},
		{`["AmbientOcclusion","Curvature"]`, []any{"AmbientOcclusion", "Curvature"}},
		{"a, b,", []any{"a", "b"}},
		{"127.0.0.1:9090", "127.0.0.1:9090"},
		{"console", "console"},
	}
	for _, tt := range tests {
		got := parseValue(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := NewEnvLoaderWithMapping("LK_", nil).WithEnviron(environ("LK_ADDR=:9100"))
	l.AddMapping("LK_ADDR", "metrics.addr")

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := GetByPath(config, "metrics.addr"); v != ":9100" {
		t.Errorf("metrics.addr = %v, want :9100", v)
	}
}
