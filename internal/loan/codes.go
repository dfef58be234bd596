package loan

import (
	"fmt"
	"strings"

	"bookdesk/internal/book"
	"bookdesk/internal/state"
	"bookdesk/internal/validate"
)

// CheckCodes verifies that every code names a catalog book that can be lent.
// A book must be Available unless its code is in held, the codes the loan
// being edited already has.
func CheckCodes(codes []string, catalog []book.Book, held ...string) error {
	byCode := make(map[string]book.Book, len(catalog))
	for _, b := range catalog {
		byCode[strings.TrimSpace(b.CodeBook)] = b
	}
	kept := make(map[string]struct{}, len(held))
	for _, c := range held {
		kept[strings.TrimSpace(c)] = struct{}{}
	}

	var errs validate.Errors
	for _, c := range normalizeCodes(codes) {
		b, ok := byCode[c]
		if !ok {
			errs = validate.Check(errs, false, "codeBook", fmt.Sprintf("no book with code %s", c))
			continue
		}
		if _, ok := kept[c]; ok {
			continue
		}
		errs = validate.Check(errs, b.Status == book.StatusAvailable, "codeBook",
			fmt.Sprintf("%s (%s) is %s", c, b.Title, book.StyleFor(b.Status).Label))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", state.ErrInvalid, errs)
	}
	return nil
}
