package handler

import "testing"

func TestValidateEvent(t *testing.T) {
	good := eventReq{
		Title:     "Opening shift",
		Date:      "2026-04-01",
		StartTime: "09:00",
		EndTime:   "17:00",
		Timezone:  "Europe/Berlin",
	}
	if errs := validateEvent(good); errs.Any() {
		t.Fatalf("expected valid event, got %v", errs)
	}

	bad := good
	bad.Date = "01/04/2026"
	if errs := validateEvent(bad); len(errs["date"]) == 0 {
		t.Fatalf("expected date format error, got %v", errs)
	}

	bad = good
	bad.StartTime = "9am"
	if errs := validateEvent(bad); len(errs["start_time"]) == 0 {
		t.Fatalf("expected start_time format error, got %v", errs)
	}

	bad = good
	bad.Timezone = "Mars/Olympus"
	if errs := validateEvent(bad); len(errs["timezone"]) == 0 {
		t.Fatalf("expected timezone error, got %v", errs)
	}
}
