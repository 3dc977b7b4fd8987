package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateDayGranularity(t *testing.T) {
	morning := Date{Time: time.Date(2024, 1, 5, 8, 30, 0, 0, time.UTC)}
	evening := Date{Time: time.Date(2024, 1, 5, 23, 59, 59, 0, time.FixedZone("CET", 3600))}

	if !morning.SameDay(NewDate(2024, 1, 5)) {
		t.Fatalf("expected morning timestamp to collapse to 2024-01-05")
	}
	if morning.BeforeDay(evening) || morning.AfterDay(evening) {
		t.Fatalf("timestamps on the same day must be day-equal")
	}
	if !NewDate(2024, 1, 4).BeforeDay(morning) {
		t.Fatalf("expected Jan 4 before Jan 5")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Fatalf("unexpected date %s", d)
	}
	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestTransactionSigned(t *testing.T) {
	cases := []struct {
		typ  TransactionType
		want string
	}{
		{Income, "100"},
		{Expense, "-100"},
		{AmountOut, "-100"},
	}
	for _, tc := range cases {
		tx := Transaction{Type: tc.typ, Amount: decimal.NewFromInt(100)}
		if got := tx.Signed(); got.String() != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.typ, tc.want, got)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:     NewDate(2024, 1, 5),
		Details:  "office chairs",
		Category: "Equipment",
		Type:     Expense,
		Amount:   decimal.NewFromInt(250),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Details: "a", Category: "c", Type: Income, Amount: decimal.NewFromInt(1)}, // zero date
		{Date: NewDate(2024, 1, 5), Details: "a", Category: "c", Type: "TRANSFER", Amount: decimal.NewFromInt(1)},
		{Date: NewDate(2024, 1, 5), Details: "a", Category: "c", Type: Income, Amount: decimal.NewFromInt(-1)},
		{Date: NewDate(2024, 1, 5), Details: "", Category: "c", Type: Income, Amount: decimal.NewFromInt(1)},
		{Date: NewDate(2024, 1, 5), Details: "a", Category: "", Type: Income, Amount: decimal.NewFromInt(1)},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestStaffMemberValidate(t *testing.T) {
	good := StaffMember{Name: "Amina", Salary: decimal.NewFromInt(900), Status: StaffActive}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (StaffMember{Name: "B", Salary: decimal.NewFromInt(1), Status: "Retired"}).Validate(); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
