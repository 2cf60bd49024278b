package history

import "lendingScope/internal/model"

// Response is the wire form of a Result. Lists are never null and the
// representative error is null when every source succeeded.
type Response struct {
	Address      string                        `json:"address"`
	Generation   uint64                        `json:"generation"`
	RoundID      string                        `json:"roundId,omitempty"`
	Loading      bool                          `json:"loading"`
	Error        *string                       `json:"error"`
	Errors       []model.SourceError           `json:"errors"`
	Transactions []model.NormalizedTransaction `json:"transactions"`
}

func NewResponse(res Result) Response {
	out := Response{
		Address:      res.Address,
		Generation:   res.Generation,
		RoundID:      res.RoundID,
		Loading:      res.Loading,
		Errors:       res.Errors,
		Transactions: res.Transactions,
	}
	if res.Err != nil {
		msg := res.Err.Error()
		out.Error = &msg
	}
	if out.Errors == nil {
		out.Errors = []model.SourceError{}
	}
	if out.Transactions == nil {
		out.Transactions = []model.NormalizedTransaction{}
	}
	return out
}
