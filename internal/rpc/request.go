package rpc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Amount carries a raw amount scalar. Callers may send either a JSON
// number (12.5) or a string ("12.5"); parsing and validation happen in
// the core, so malformed values surface as validation failures, not
// decode errors.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string")
	}
	*a = Amount(n.String())
	return nil
}

func (a Amount) String() string {
	return string(a)
}

type addExpenseRequest struct {
	Date        string `json:"date"`
	Amount      Amount `json:"amount"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Note        string `json:"note"`
}

type listExpensesRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type summarizeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Category  string `json:"category"`
}

type editExpenseRequest struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Amount      Amount `json:"amount"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Note        string `json:"note"`
}

type deleteExpenseRequest struct {
	ID int64 `json:"id"`
}

type addCreditRequest struct {
	Amount   Amount `json:"amount"`
	UserName string `json:"user_name"`
}

// maxBodyBytes bounds operation request bodies; arguments are a handful
// of scalars.
const maxBodyBytes = 1 << 16

func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return fmt.Errorf("empty request body")
		}
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}
