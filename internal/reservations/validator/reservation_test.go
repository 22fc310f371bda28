package validator

import (
	"errors"
	"io"
	"testing"

	"salas/pkg/logger"
	"salas/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:  logger.ERROR,
		Format: logger.TEXT,
		Output: io.Discard,
	})
}

func validInput() *model.ReservationInput {
	return &model.ReservationInput{
		Day:        "2026-03-05",
		StartTime:  "9:30",
		EndTime:    "11:00",
		Room:       "Sala Norte",
		Area:       "Finanzas",
		Attendance: 6,
	}
}

func TestValidate_Valid(t *testing.T) {
	v := NewReservationValidator(testLogger())

	if err := v.Validate(validInput()); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

func TestValidate_TimestampClocksAccepted(t *testing.T) {
	v := NewReservationValidator(testLogger())

	input := validInput()
	input.StartTime = "2026-03-05T14:30:00Z"
	input.EndTime = "2026-03-05T16:00:00Z"

	if err := v.Validate(input); err != nil {
		t.Fatalf("expected timestamp clocks to pass, got %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	v := NewReservationValidator(testLogger())

	tests := []struct {
		name   string
		mutate func(*model.ReservationInput)
		field  string
	}{
		{"missing day", func(i *model.ReservationInput) { i.Day = "" }, "Day"},
		{"missing start time", func(i *model.ReservationInput) { i.StartTime = "" }, "StartTime"},
		{"missing end time", func(i *model.ReservationInput) { i.EndTime = "" }, "EndTime"},
		{"missing room", func(i *model.ReservationInput) { i.Room = "" }, "Room"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			err := v.Validate(input)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}

			found := false
			for _, ve := range verrs {
				if ve.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got %v", tt.field, verrs)
			}
		})
	}
}

func TestValidate_RejectsMalformedClock(t *testing.T) {
	v := NewReservationValidator(testLogger())

	input := validInput()
	input.StartTime = "half past nine"

	err := v.Validate(input)
	if err == nil {
		t.Fatal("expected validation error for malformed clock")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
}

func TestValidate_AttendanceBounds(t *testing.T) {
	v := NewReservationValidator(testLogger())

	input := validInput()
	input.Attendance = 501

	if err := v.Validate(input); err == nil {
		t.Fatal("expected validation error for attendance over limit")
	}
}
