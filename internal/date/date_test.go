package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	d, err := Parse("2026-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2026-03-10" {
		t.Errorf("String() = %q, want 2026-03-10", d.String())
	}

	for _, bad := range []string{"", "2026-3-10", "10.03.2026", "2026-03-10T00:00:00Z", "not a date"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) accepted", bad)
		}
	}
}

func TestFromTimeDropsClock(t *testing.T) {
	ts := time.Date(2026, 3, 10, 23, 59, 59, 0, time.Local)
	d := FromTime(ts)
	if d.String() != "2026-03-10" {
		t.Errorf("FromTime = %q, want 2026-03-10", d.String())
	}
	if !d.Equal(New(2026, time.March, 10)) {
		t.Error("FromTime and New disagree for the same day")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2026, time.March, 10)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2026-03-10"` {
		t.Errorf("marshaled = %s, want quoted date", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip changed the date: %s", back)
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"03/10/2026"`), &d); err == nil {
		t.Error("unmarshal accepted a non-ISO date")
	}
}
