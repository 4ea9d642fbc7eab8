package loader

import (
	"errors"
	"strings"
	"testing"
)

// loadErr runs LoadBytes and returns the error text, failing the test
// if the document loaded cleanly.
func loadErr(t *testing.T, doc string) string {
	t.Helper()
	_, _, err := LoadBytes([]byte(doc))
	if err == nil {
		t.Fatal("expected a validation error")
	}
	return err.Error()
}

func TestValidate_UnknownContainedItem(t *testing.T) {
	msg := loadErr(t, `
<adventure>
  <area id="hall" name="Hall" desc="d">
    <contains item="ghost"/>
  </area>
  <entry id="1"><enter area="hall"/></entry>
</adventure>`)
	if !strings.Contains(msg, "ghost") || !strings.Contains(msg, "hall") {
		t.Errorf("error %q should name item and area", msg)
	}
}

func TestValidate_UnknownPropItem(t *testing.T) {
	msg := loadErr(t, `
<adventure>
  <area id="hall" name="Hall" desc="d">
    <prop name="shelf" desc="d">
      <contains item="ghost"/>
    </prop>
  </area>
  <entry id="1"><enter area="hall"/></entry>
</adventure>`)
	if !strings.Contains(msg, "ghost") || !strings.Contains(msg, "shelf") {
		t.Errorf("error %q should name item and prop", msg)
	}
}

func TestValidate_UnknownConnectedArea(t *testing.T) {
	msg := loadErr(t, `
<adventure>
  <area id="hall" name="Hall" desc="d">
    <connects to="void" dir="east"/>
  </area>
  <entry id="1"><enter area="hall"/></entry>
</adventure>`)
	if !strings.Contains(msg, "void") {
		t.Errorf("error %q should name the missing area", msg)
	}
}

func TestValidate_BadAmount(t *testing.T) {
	for _, amount := range []string{"0", "-2", "many"} {
		msg := loadErr(t, `
<adventure>
  <item id="coin" name="coin" desc="d"/>
  <area id="hall" name="Hall" desc="d">
    <contains item="coin" ammount="`+amount+`"/>
  </area>
  <entry id="1"><enter area="hall"/></entry>
</adventure>`)
		if !strings.Contains(msg, "ammount") {
			t.Errorf("ammount=%s: error %q should name the attribute", amount, msg)
		}
	}
}

func TestValidate_DuplicateIDs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			"item",
			`<adventure>
  <item id="coin" name="coin" desc="d"/>
  <item id="coin" name="coin" desc="d"/>
  <area id="hall" name="Hall" desc="d"/>
  <entry id="1"><enter area="hall"/></entry>
</adventure>`,
		},
		{
			"area",
			`<adventure>
  <area id="hall" name="Hall" desc="d"/>
  <area id="hall" name="Hall" desc="d"/>
  <entry id="1"><enter area="hall"/></entry>
</adventure>`,
		},
		{
			"entry",
			`<adventure>
  <area id="hall" name="Hall" desc="d"/>
  <entry id="1"><enter area="hall"/></entry>
  <entry id="1"><text>again</text></entry>
</adventure>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := loadErr(t, tt.doc)
			if !strings.Contains(msg, "duplicate") {
				t.Errorf("error %q should report the duplicate", msg)
			}
		})
	}
}

func TestValidate_DuplicateDirection(t *testing.T) {
	msg := loadErr(t, `
<adventure>
  <area id="hall" name="Hall" desc="d">
    <connects to="yard" dir="east"/>
    <connects to="cave" dir="east"/>
  </area>
  <area id="yard" name="Yard" desc="d"/>
  <area id="cave" name="Cave" desc="d"/>
  <entry id="1"><enter area="hall"/></entry>
</adventure>`)
	if !strings.Contains(msg, "east") || !strings.Contains(msg, "hall") {
		t.Errorf("error %q should name direction and area", msg)
	}
}

func TestValidate_UnknownKeyItem(t *testing.T) {
	msg := loadErr(t, `
<adventure>
  <area id="hall" name="Hall" desc="d">
    <connects to="vault" dir="north" type="door" key="skeleton"/>
  </area>
  <area id="vault" name="Vault" desc="d"/>
  <entry id="1"><enter area="hall"/></entry>
</adventure>`)
	if !strings.Contains(msg, "skeleton") {
		t.Errorf("error %q should name the missing key item", msg)
	}
}

func TestValidate_MissingStartEntry(t *testing.T) {
	msg := loadErr(t, `
<adventure>
  <area id="hall" name="Hall" desc="d"/>
  <entry id="2"><enter area="hall"/></entry>
</adventure>`)
	if !strings.Contains(msg, `"1"`) {
		t.Errorf("error %q should name the missing start entry", msg)
	}
}

func TestValidate_EnterUnknownArea(t *testing.T) {
	msg := loadErr(t, `
<adventure>
  <area id="hall" name="Hall" desc="d"/>
  <entry id="1"><enter area="nowhere"/></entry>
</adventure>`)
	if !strings.Contains(msg, "nowhere") {
		t.Errorf("error %q should name the missing area", msg)
	}
}

func TestValidate_SelectOptionEnterUnknownArea(t *testing.T) {
	msg := loadErr(t, `
<adventure>
  <area id="hall" name="Hall" desc="d"/>
  <entry id="1">
    <select text="Which way?">
      <option name="in"><enter area="hall"/></option>
      <option name="out"><enter area="nowhere"/></option>
    </select>
  </entry>
</adventure>`)
	if !strings.Contains(msg, "nowhere") {
		t.Errorf("error %q should name the missing area", msg)
	}
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	_, _, err := LoadBytes([]byte(`
<adventure>
  <area id="hall" name="Hall" desc="d">
    <contains item="ghost"/>
    <connects to="void" dir="east"/>
  </area>
  <entry id="2"><enter area="nowhere"/></entry>
</adventure>`))
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error is %T, want *ValidationError", err)
	}
	if len(ve.Errors) < 4 {
		t.Errorf("accumulated %d errors, want at least 4: %v", len(ve.Errors), ve.Errors)
	}
}
