package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sandeepkv93/tasklist/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"filter active", TypeFilter},
		{"/search milk", TypeSearch},
		{"search", TypeSearch},
		{"priority HIGH", TypePriority},
		{"due 2026-10-20", TypeDue},
		{"due none", TypeDue},
		{"/clear", TypeClear},
		{"THEME", TypeTheme},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"  /  ", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"add", ErrCodeInvalidArgument},
		{"add !high", ErrCodeInvalidArgument},
		{"add !low due:2026-10-31", ErrCodeInvalidArgument},
		{"filter", ErrCodeInvalidArgument},
		{"filter done", ErrCodeInvalidArgument},
		{"priority", ErrCodeInvalidArgument},
		{"priority urgent", ErrCodeInvalidArgument},
		{"due", ErrCodeInvalidArgument},
		{"due 20/10/2026", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestParseAddTokens(t *testing.T) {
	cmd, err := Parse("/add  Pay   rent !High due:2026-10-31 ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	add := cmd.Add
	if add.Text != "Pay   rent" || add.Priority != model.PriorityHigh {
		t.Fatalf("unexpected add args: %+v", add)
	}
	if add.Due == nil || add.Due.Format(model.DateLayout) != "2026-10-31" {
		t.Fatalf("unexpected due date: %v", add.Due)
	}

	plain, err := ParseAddLine("Just text")
	if err != nil || plain.Priority != model.PriorityMedium || plain.Due != nil {
		t.Fatalf("unexpected defaults: %+v err=%v", plain, err)
	}
	bang, err := ParseAddLine("Say hello !")
	if err != nil || bang.Text != "Say hello !" {
		t.Fatalf("lone ! should stay in text: %+v err=%v", bang, err)
	}
}

func TestParseAddLineKeepsNonTokens(t *testing.T) {
	due := func(s string) *time.Time {
		d, err := model.ParseDate(s)
		if err != nil {
			t.Fatalf("bad fixture date %q: %v", s, err)
		}
		return &d
	}
	cases := []struct {
		line string
		want AddArgs
	}{
		{"!!! urgent", AddArgs{Text: "!!! urgent", Priority: model.PriorityMedium}},
		{"read due:later notes", AddArgs{Text: "read due:later notes", Priority: model.PriorityMedium}},
		{"Buy   milk", AddArgs{Text: "Buy   milk", Priority: model.PriorityMedium}},
		{"Call mom !urgent", AddArgs{Text: "Call mom !urgent", Priority: model.PriorityMedium}},
		{"pay due:2026-02-30 bill", AddArgs{Text: "pay due:2026-02-30 bill", Priority: model.PriorityMedium}},
		{"!HIGH  Buy   milk", AddArgs{Text: "Buy   milk", Priority: model.PriorityHigh}},
		{"Buy !low  milk", AddArgs{Text: "Buy  milk", Priority: model.PriorityLow}},
		{"ship !low it !high due:2026-10-31", AddArgs{Text: "ship it", Priority: model.PriorityHigh, Due: due("2026-10-31")}},
		{"tabs\tstay due:2026-10-31\there", AddArgs{Text: "tabs\tstay\there", Priority: model.PriorityMedium, Due: due("2026-10-31")}},
	}
	for _, tc := range cases {
		got, err := ParseAddLine(tc.line)
		if err != nil {
			t.Fatalf("ParseAddLine(%q) failed: %v", tc.line, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("ParseAddLine(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
	}

	cmd, err := Parse("/add  Buy   milk  !!! ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Text != "Buy   milk  !!!" {
		t.Fatalf("palette add should keep the typed text, got %q", cmd.Add.Text)
	}
}

func TestParseDueNoneClears(t *testing.T) {
	cmd, err := Parse("due NONE")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Due == nil || cmd.Due.Due != nil {
		t.Fatalf("expected clearing due args, got %+v", cmd.Due)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs !low")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" || a.Priority != model.PriorityLow {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"filter all", "search x", "priority low", "due none", "clear", "theme", "add x"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}

func TestExecuteUnknownType(t *testing.T) {
	_, err := Execute(Command{Type: Type("nope")}, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}
