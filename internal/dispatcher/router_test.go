package dispatcher_test

import (
	"testing"

	"github.com/dshills/layerkeys/internal/dispatcher"
	"github.com/dshills/layerkeys/internal/dispatcher/handler"
)

func TestRouterRoute(t *testing.T) {
	router := dispatcher.NewRouter()
	ns := handler.NewBaseNamespaceHandler("stack")
	ns.Register("stack.flattenVisible", message("flat"))
	router.RegisterNamespace(ns)

	if !router.HasNamespace("stack") {
		t.Error("expected HasNamespace(stack)")
	}
	if router.Route("stack.flattenVisible") == nil {
		t.Error("expected a handler for stack.flattenVisible")
	}
	if router.Route("stack.unknown") != nil {
		t.Error("expected nil for an action the namespace does not claim")
	}
	if router.Route("layer.newPaint") != nil {
		t.Error("expected nil for an unregistered namespace")
	}
	if router.Route("flattenVisible") != nil {
		t.Error("expected nil for a name without a namespace")
	}
}

func TestExtractNamespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"mask.toggle", "mask"},
		{"layer.newFillBaseColor", "layer"},
		{"a.b.c", "a"},
		{"plain", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := dispatcher.ExtractNamespace(tc.in); got != tc.want {
			t.Errorf("ExtractNamespace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildActionName(t *testing.T) {
	if got := dispatcher.BuildActionName("bake", "textureSet"); got != "bake.textureSet" {
		t.Errorf("BuildActionName() = %q", got)
	}
	if got := dispatcher.BuildActionName("", "textureSet"); got != "textureSet" {
		t.Errorf("BuildActionName(empty) = %q", got)
	}
}
