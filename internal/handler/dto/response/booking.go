package response

import (
	"time"

	"shareit/internal/usecase"

	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"booker"`
	Item struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"item"`
}

func FromBookingView(v *usecase.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromBookingViews(vs []*usecase.BookingView) []*BookingResponse {
	resps := make([]*BookingResponse, len(vs))
	for i, v := range vs {
		resps[i] = FromBookingView(v)
	}
	return resps
}
