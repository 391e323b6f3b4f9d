package bridge

import "testing"

func TestParseEventData_LightUpdate(t *testing.T) {
	payload := []byte(`[
		{
			"creationtime": "2025-01-01T12:00:00Z",
			"type": "update",
			"data": [
				{
					"id": "f8f9a2d0-1111-2222-3333-444455556666",
					"id_v1": "/lights/3",
					"type": "light",
					"on": {"on": true},
					"dimming": {"brightness": 50.0}
				}
			]
		}
	]`)

	updates := parseEventData(payload)
	if len(updates) != 1 {
		t.Fatalf("got %d updates, want 1", len(updates))
	}

	u := updates[0]
	if u.LightID != 3 {
		t.Errorf("light id = %d, want 3", u.LightID)
	}
	if u.On == nil || !*u.On {
		t.Error("on should be set true")
	}
	if u.Bri == nil {
		t.Fatal("bri should be set")
	}
	// 50% of 254
	if *u.Bri != 127 {
		t.Errorf("bri = %d, want 127", *u.Bri)
	}
}

func TestParseEventData_IgnoresNonLight(t *testing.T) {
	payload := []byte(`[
		{
			"type": "update",
			"data": [
				{"id": "x", "id_v1": "/sensors/2", "type": "motion"},
				{"id": "y", "id_v1": "/groups/1", "type": "grouped_light", "on": {"on": false}},
				{"id": "z", "id_v1": "/lights/9", "type": "light"}
			]
		},
		{
			"type": "add",
			"data": [
				{"id": "w", "id_v1": "/lights/4", "type": "light", "on": {"on": true}}
			]
		}
	]`)

	// The only light entry carries neither on nor dimming; the grouped_light
	// and sensor entries are other resource types; the "add" frame is not an
	// update. Nothing should come out.
	if updates := parseEventData(payload); len(updates) != 0 {
		t.Errorf("got %v, want none", updates)
	}
}

func TestParseEventData_Garbage(t *testing.T) {
	if updates := parseEventData([]byte("not json")); updates != nil {
		t.Errorf("garbage payload should yield nil, got %v", updates)
	}
	if updates := parseEventData([]byte(`{"object":"not-array"}`)); updates != nil {
		t.Errorf("non-array payload should yield nil, got %v", updates)
	}
}

func TestParseV1LightID(t *testing.T) {
	cases := []struct {
		in string
		id int
		ok bool
	}{
		{"/lights/1", 1, true},
		{"/lights/42", 42, true},
		{"/groups/1", 0, false},
		{"/lights/abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		id, ok := parseV1LightID(tc.in)
		if id != tc.id || ok != tc.ok {
			t.Errorf("parseV1LightID(%q) = (%d, %v), want (%d, %v)", tc.in, id, ok, tc.id, tc.ok)
		}
	}
}

func TestDefaultStreamConfig(t *testing.T) {
	cfg := DefaultStreamConfig()
	if cfg.MinBackoff <= 0 || cfg.MaxBackoff <= cfg.MinBackoff {
		t.Errorf("backoff bounds: %+v", cfg)
	}
	if cfg.Multiplier <= 1.0 {
		t.Errorf("multiplier should grow backoff: %v", cfg.Multiplier)
	}
	if cfg.MaxReconnects != 0 {
		t.Errorf("default should reconnect forever, got %d", cfg.MaxReconnects)
	}
}
