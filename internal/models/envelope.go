package models

import "net/http"

const (
	MsgFetched         = "Successfully fetched data"
	MsgFetchedAndSaved = "Successfully fetched and saved data"
	MsgNoMoreResults   = "No more results"
	MsgFetchFailed     = "Failed to fetch data from the API"
)

// Envelope is the body of every news response. Status is advisory: the
// transport status is 200 even when Status reports 500.
type Envelope struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Fetched(data any) Envelope {
	return Envelope{Status: http.StatusOK, Success: true, Message: MsgFetched, Data: data}
}

func FetchedAndSaved(data any) Envelope {
	return Envelope{Status: http.StatusOK, Success: true, Message: MsgFetchedAndSaved, Data: data}
}

func NoMoreResults() Envelope {
	return Envelope{Status: http.StatusOK, Success: true, Message: MsgNoMoreResults}
}

func FetchFailed(err error) Envelope {
	return Envelope{
		Status:  http.StatusInternalServerError,
		Success: false,
		Message: MsgFetchFailed,
		Error:   err.Error(),
	}
}
