package vdf

import "testing"

const localConfig = `"UserLocalConfigStore"
{
	// comment line
	"friends"
	{
		"PersonaName"		"Player \"One\""
		"7656"	{ "name" "x" }
	}
	"Platform"	"win" [$WIN32]
	bare	token
}
`

func TestDecodeText(t *testing.T) {
	root, err := DecodeText(localConfig)
	if err != nil {
		t.Fatalf("DecodeText returned error: %v", err)
	}
	store, ok := root.GetMap("UserLocalConfigStore")
	if !ok {
		t.Fatal("expected UserLocalConfigStore")
	}
	friends, ok := store.GetMap("friends")
	if !ok {
		t.Fatal("expected friends map")
	}
	if name, _ := friends.GetString("PersonaName"); name != `Player "One"` {
		t.Fatalf("PersonaName = %q", name)
	}
	if v, _ := store.GetString("Platform"); v != "win" {
		t.Fatalf("Platform = %q", v)
	}
	if v, _ := store.GetString("bare"); v != "token" {
		t.Fatalf("bare = %q", v)
	}
}

func TestDecodeTextErrors(t *testing.T) {
	for name, src := range map[string]string{
		"unbalanced close": `"a" "b" }`,
		"missing close":    `"a" { "b" "c"`,
		"missing value":    `"a" { "b" }`,
		"open without key": `{ }`,
		"unterminated":     `"a" "b`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeText(src); err == nil {
				t.Fatalf("expected error for %q", src)
			}
		})
	}
}
