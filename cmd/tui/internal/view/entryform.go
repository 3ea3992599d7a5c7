package view

import (
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/spendo/internal/editor"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

// entryFields backs an entry form. Models keep a pointer to it so the form's
// bindings survive the model being copied.
type entryFields struct {
	Date    string
	Title   string
	Content string
	Price   string
	Type    string
	Payment string
}

func fieldsFrom(d ledger.Draft) *entryFields {
	return &entryFields{
		Date:    d.Date,
		Title:   d.Title,
		Content: d.Content,
		Price:   d.Price,
		Type:    d.TypeCode,
		Payment: d.PaymentCode,
	}
}

// stage copies the form values onto the orchestrator's open draft.
func (f *entryFields) stage(o editor.Orchestrator) (editor.Orchestrator, error) {
	values := []struct {
		field ledger.Field
		value string
	}{
		{ledger.FieldDate, f.Date},
		{ledger.FieldTitle, f.Title},
		{ledger.FieldContent, f.Content},
		{ledger.FieldPrice, f.Price},
		{ledger.FieldType, f.Type},
		{ledger.FieldPayment, f.Payment},
	}

	var err error

	for _, v := range values {
		if o, err = o.UpdateField(v.field, v.value); err != nil {
			return o, err
		}
	}

	return o, nil
}

// newEntryForm builds the create and edit form. The selectors only offer
// concrete codes, never ALL.
func newEntryForm(f *entryFields, codes refcode.Cache) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.Date),

			huh.NewInput().
				Key("title").
				Title("Title").
				CharLimit(100).
				Value(&f.Title),

			huh.NewInput().
				Key("price").
				Title("Price").
				Placeholder("4,500").
				Value(&f.Price),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(codeOptions(codes.TypeCodes(), false)...).
				Value(&f.Type),

			huh.NewSelect[string]().
				Key("payment").
				Title("Payment").
				Options(codeOptions(codes.PaymentCodes(), false)...).
				Value(&f.Payment),

			huh.NewText().
				Key("content").
				Title("Memo").
				CharLimit(1000).
				Lines(3).
				Value(&f.Content),
		),
	).WithWidth(45).WithShowHelp(false)
}

// codeOptions lists codes by display name, optionally led by ALL.
func codeOptions(codes []ledger.ReferenceCode, withAll bool) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(codes)+1)

	if withAll {
		opts = append(opts, huh.NewOption("All", ledger.All))
	}

	for _, c := range codes {
		opts = append(opts, huh.NewOption(c.Name, c.Code))
	}

	return opts
}
