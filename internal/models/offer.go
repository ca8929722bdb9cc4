package models

// Offer is a single priced itinerary returned by the offer-search provider.
// The calendar engine only interprets Price; everything else is forwarded
// to the caller untouched as flightData.
type Offer struct {
	ID            string  `json:"id,omitempty"`
	Carrier       string  `json:"carrier,omitempty"`
	FlightNumber  string  `json:"flightNumber,omitempty"`
	DepartureTime string  `json:"departureTime,omitempty"`
	ArrivalTime   string  `json:"arrivalTime,omitempty"`
	Duration      string  `json:"duration,omitempty"`
	Stops         int     `json:"stops"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency,omitempty"`
	SeatsLeft     int     `json:"seatsLeft,omitempty"`
}
