package models

// DayPrice is the wire form of a DayPriceRecord. Price and FlightData are
// null unless Status is "success".
type DayPrice struct {
	Date           string   `json:"date"`
	Price          *float64 `json:"price"`
	FlightData     *Offer   `json:"flightData"`
	Status         string   `json:"status"`
	DaysFromSearch int      `json:"daysFromSearch"`
}

// Stats carries the calendar summary. Every field is absent when the
// calendar resolved zero successful days.
type Stats struct {
	LowestPrice         *float64 `json:"lowestPrice,omitempty"`
	HighestPrice        *float64 `json:"highestPrice,omitempty"`
	AveragePrice        *float64 `json:"averagePrice,omitempty"`
	BestDate            *string  `json:"bestDate,omitempty"`
	SearchDatePrice     *float64 `json:"searchDatePrice,omitempty"`
	PotentialSavings    *float64 `json:"potentialSavings,omitempty"`
	DaysBeforeBestPrice *int     `json:"daysBeforeBestPrice,omitempty"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CalendarMeta struct {
	TotalDays       int       `json:"totalDays"`
	ValidDataPoints int       `json:"validDataPoints"`
	Duration        string    `json:"duration"`
	Cancelled       bool      `json:"cancelled,omitempty"`
	DateRange       DateRange `json:"dateRange"`
}

type CalendarResponse struct {
	Success    bool         `json:"success"`
	Route      string       `json:"route"`
	SearchDate string       `json:"searchDate"`
	PriceData  []DayPrice   `json:"priceData"`
	Stats      Stats        `json:"stats"`
	Meta       CalendarMeta `json:"meta"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
