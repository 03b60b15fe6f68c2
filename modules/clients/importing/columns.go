package importing

import (
	"fmt"
	"strings"
)

// Row is one parsed spreadsheet line, keyed by header text.
type Row map[string]string

// Fields holds the extracted, normalized values for one candidate client.
type Fields struct {
	FirstName     string
	LastName      string
	PreferredName string
	Email         string
	Phone         string
	DateOfBirth   string
}

// Extraction is the per-row result of column extraction: cleaned fields plus
// advisory diagnostics. Diagnostics never abort a row.
type Extraction struct {
	Fields      Fields
	Diagnostics []string
}

var (
	firstNameHeaders = []string{"first name", "firstname", "first", "given name", "fname"}
	lastNameHeaders  = []string{"last name", "lastname", "last", "surname", "family name", "lname"}
	fullNameHeaders  = []string{"name", "full name", "client name", "client"}
	emailHeaders     = []string{"email", "e-mail", "email address", "e-mail address"}
	phoneHeaders     = []string{"phone", "phone number", "mobile", "cell", "telephone", "contact number"}
	dobHeaders       = []string{"date of birth", "dob", "birth date", "birthdate", "birthday"}
	preferredHeaders = []string{"preferred name", "nickname", "goes by", "preferred"}
)

// headerValue returns the trimmed value of the first header variant present
// in the row, matched case-insensitively.
func headerValue(row Row, variants []string) (string, bool) {
	for _, variant := range variants {
		for header, value := range row {
			if strings.EqualFold(strings.TrimSpace(header), variant) {
				return strings.TrimSpace(value), true
			}
		}
	}
	return "", false
}

func hasHeader(row Row, variants []string) bool {
	_, ok := headerValue(row, variants)
	return ok
}

func looksLikeEmail(v string) bool {
	return strings.Contains(v, "@")
}

// Extract pulls the recognized fields out of one row. rowNumber is the
// 1-based spreadsheet row (header row is 1, first data row is 2) and is only
// used for the last-resort placeholder name.
func Extract(row Row, rowNumber int) Extraction {
	var ex Extraction

	first, _ := headerValue(row, firstNameHeaders)
	last, _ := headerValue(row, lastNameHeaders)
	fullName, _ := headerValue(row, fullNameHeaders)
	email, _ := headerValue(row, emailHeaders)
	phone, _ := headerValue(row, phoneHeaders)
	preferred, _ := headerValue(row, preferredHeaders)

	ex.Fields.FirstName = first
	ex.Fields.LastName = last
	ex.Fields.Email = email
	ex.Fields.Phone = phone
	ex.Fields.PreferredName = preferred

	// Legacy export repair: some real-world files carried a lone Name column
	// with every later column shifted left by one, leaving the last name in
	// the Email column and the email in the Phone column. Detect that exact
	// shape and nothing more general.
	if !hasHeader(row, firstNameHeaders) && !hasHeader(row, lastNameHeaders) && fullName != "" {
		if email != "" && !looksLikeEmail(email) && looksLikeEmail(phone) {
			ex.Fields.FirstName = fullName
			ex.Fields.LastName = email
			ex.Fields.Email = phone
			ex.Fields.Phone = ""
			ex.Diagnostics = append(ex.Diagnostics,
				fmt.Sprintf("Detected shifted columns; repaired as name '%s %s', email '%s'", fullName, email, phone))
		}
	}

	if ex.Fields.FirstName == "" && ex.Fields.LastName == "" && fullName != "" {
		ex.Fields.FirstName, ex.Fields.LastName = splitFullName(fullName)
	}

	if ex.Fields.FirstName == "" && ex.Fields.LastName == "" {
		ex.applyNameFallback(rowNumber)
	}

	if raw, ok := headerValue(row, dobHeaders); ok && raw != "" {
		normalized, err := NormalizeDate(raw)
		if err != nil {
			ex.Diagnostics = append(ex.Diagnostics, fmt.Sprintf("Invalid date format '%s'", raw))
		} else {
			ex.Fields.DateOfBirth = normalized
		}
	}

	return ex
}

// applyNameFallback fills in a name when the row has none: email local-part
// first, then a phone placeholder, then a row-number placeholder.
func (ex *Extraction) applyNameFallback(rowNumber int) {
	if ex.Fields.Email != "" && looksLikeEmail(ex.Fields.Email) {
		local := ex.Fields.Email[:strings.Index(ex.Fields.Email, "@")]
		ex.Fields.FirstName, ex.Fields.LastName = splitEmailLocalPart(local)
		ex.Diagnostics = append(ex.Diagnostics,
			fmt.Sprintf("No name found; derived '%s' from email", strings.TrimSpace(ex.Fields.FirstName+" "+ex.Fields.LastName)))
		return
	}
	if ex.Fields.Phone != "" {
		ex.Fields.FirstName = "Client"
		ex.Fields.LastName = ex.Fields.Phone
		ex.Diagnostics = append(ex.Diagnostics,
			fmt.Sprintf("No name found; using placeholder 'Client %s'", ex.Fields.Phone))
		return
	}
	ex.Fields.FirstName = "Client"
	ex.Fields.LastName = fmt.Sprintf("%d", rowNumber)
	ex.Diagnostics = append(ex.Diagnostics,
		fmt.Sprintf("No name found; using placeholder 'Client %d'", rowNumber))
}

// splitFullName breaks a single Name cell into first name and remainder.
func splitFullName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// splitEmailLocalPart turns "jane.doe" / "jane_doe" / "jane-doe" into a
// first/last pair, or uses the whole local part as a first name.
func splitEmailLocalPart(local string) (string, string) {
	separators := []string{".", "_", "-"}
	for _, sep := range separators {
		if strings.Contains(local, sep) {
			parts := strings.SplitN(local, sep, 2)
			return parts[0], strings.ReplaceAll(strings.ReplaceAll(strings.ReplaceAll(parts[1], ".", " "), "_", " "), "-", " ")
		}
	}
	return local, ""
}
