package config

import (
	"testing"
	"time"

	kit "fakenews/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	root := New()
	det := root.Prefix("CORE_")
	if got := det.key("VARIANT"); got != "CORE_VARIANT" {
		t.Fatalf("key() = %q, want %q", got, "CORE_VARIANT")
	}
	nested := det.Prefix("DETECT_")
	if got := nested.key("MAX_LEN"); got != "CORE_DETECT_MAX_LEN" {
		t.Fatalf("nested key() = %q, want %q", got, "CORE_DETECT_MAX_LEN")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_MODEL", "  lstm_model.json ")
	if got := c.MustString("MODEL"); got != "lstm_model.json" {
		t.Fatalf("MustString = %q, want %q", got, "lstm_model.json")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	t.Setenv("APP_WS", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("WS") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q, want %q", got, "def")
	}
	t.Setenv("S_NAME", " fakenews ")
	if got := c.MayString("NAME", "x"); got != "fakenews" {
		t.Fatalf("MayString value = %q, want %q", got, "fakenews")
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 200); got != 200 {
		t.Fatalf("MayInt default = %d, want %d", got, 200)
	}
	t.Setenv("I_OK", " 7 ")
	if got := c.MayInt("OK", 0); got != 7 {
		t.Fatalf("MayInt ok = %d, want %d", got, 7)
	}
	t.Setenv("I_BAD", "x")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d, want %d", got, 3)
	}
}

func TestMayFloat64(t *testing.T) {
	c := New().Prefix("F_")
	if got := c.MayFloat64("MISSING", 0.5); got != 0.5 {
		t.Fatalf("MayFloat64 default = %v, want 0.5", got)
	}
	t.Setenv("F_OK", "0.75")
	if got := c.MayFloat64("OK", 0.5); got != 0.75 {
		t.Fatalf("MayFloat64 ok = %v, want 0.75", got)
	}
	t.Setenv("F_BAD", "half")
	if got := c.MayFloat64("BAD", 0.5); got != 0.5 {
		t.Fatalf("MayFloat64 bad -> default = %v, want 0.5", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if got := c.MayBool("MISSING", true); got != true {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("B_T", "true")
	if got := c.MayBool("T", false); got != true {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("B_BAD", "nope")
	if got := c.MayBool("BAD", false); got != false {
		t.Fatalf("MayBool bad -> default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default expected")
	}
	t.Setenv("DUR_OK", "150ms")
	if got := c.MayDuration("OK", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v, want %v", got, 150*time.Millisecond)
	}
	t.Setenv("DUR_BAD", "nope")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default expected")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"*"}
	if got := c.MayCSV("MISS", def); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CSV_VALS", " http://a, http://b , ,http://c ,, ")
	got := c.MayCSV("VALS", nil)
	want := []string{"http://a", "http://b", "http://c"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	t.Setenv("CSV_EMPTY", " , ,  ,")
	if got := c.MayCSV("EMPTY", def); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")

	if got := c.MayEnum("MISS", "sequence", "sequence", "tfidf"); got != "sequence" {
		t.Fatalf("MayEnum default = %q, want %q", got, "sequence")
	}

	t.Setenv("E_VARIANT", "TFIDF")
	if got := c.MayEnum("VARIANT", "sequence", "sequence", "tfidf"); got != "tfidf" {
		t.Fatalf("MayEnum allowed value = %q, want %q", got, "tfidf")
	}

	t.Setenv("E_BAD", "bert")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "sequence", "sequence", "tfidf") })

	if got := c.MayEnum("MISSING", "", "sequence"); got != "" {
		t.Fatalf("MayEnum with empty def and missing env = %q, want empty string", got)
	}
}

func TestMayAddr(t *testing.T) {
	c := New().Prefix("A_")
	if got := c.MayAddr("MISS", ":5000"); got != ":5000" {
		t.Fatalf("MayAddr default = %q, want %q", got, ":5000")
	}
	t.Setenv("A_BARE", "8080")
	if got := c.MayAddr("BARE", ":5000"); got != ":8080" {
		t.Fatalf("MayAddr bare = %q, want %q", got, ":8080")
	}
	t.Setenv("A_HOST", "127.0.0.1:9000")
	if got := c.MayAddr("HOST", ":5000"); got != "127.0.0.1:9000" {
		t.Fatalf("MayAddr host = %q, want %q", got, "127.0.0.1:9000")
	}
	t.Setenv("A_EPHEMERAL", "127.0.0.1:0")
	if got := c.MayAddr("EPHEMERAL", ":5000"); got != "127.0.0.1:0" {
		t.Fatalf("MayAddr ephemeral = %q, want %q", got, "127.0.0.1:0")
	}
	t.Setenv("A_NEG", "-1")
	kit.MustPanic(t, func() { _ = c.MayAddr("NEG", ":5000") })
	t.Setenv("A_OOB", "70000")
	kit.MustPanic(t, func() { _ = c.MayAddr("OOB", ":5000") })
	t.Setenv("A_BAD", "localhost:http")
	kit.MustPanic(t, func() { _ = c.MayAddr("BAD", ":5000") })
}
