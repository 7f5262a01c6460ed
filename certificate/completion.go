package certificate

import "fmt"

// Section is an ordered group of completable item identifiers.
type Section struct {
	Title string
	Items []string
}

// Outline is a course's ordered item structure.
type Outline struct {
	Sections []Section
}

// Flatten returns every item in section order.
func (o Outline) Flatten() []string {
	items := make([]string, 0, o.ItemCount())
	for _, s := range o.Sections {
		items = append(items, s.Items...)
	}
	return items
}

func (o Outline) ItemCount() int {
	n := 0
	for _, s := range o.Sections {
		n += len(s.Items)
	}
	return n
}

// Progress is the set of items a learner has completed in one course.
type Progress struct {
	CompletedItems []string
}

// Evaluate gates issuance on course completion. A nil progress is
// ErrNoProgress. Completion compares counts only: the completed identifiers
// are not matched against the outline's items.
func Evaluate(outline Outline, progress *Progress) error {
	if progress == nil {
		return ErrNoProgress
	}
	total := outline.ItemCount()
	done := len(progress.CompletedItems)
	if done != total {
		return fmt.Errorf("%d of %d items completed: %w", done, total, ErrIncomplete)
	}
	return nil
}
