package models

import "time"

// DayStatus is the outcome of resolving a single calendar day.
type DayStatus string

const (
	StatusSuccess  DayStatus = "success"
	StatusNoOffers DayStatus = "no_flights"
	StatusError    DayStatus = "error"
)

// DayPriceRecord is the per-date result of the calendar pipeline. Price and
// Offer are set if and only if Status is StatusSuccess. Records are built
// once through the constructors below and never mutated.
type DayPriceRecord struct {
	Date   time.Time
	Offset int
	Status DayStatus
	Price  float64
	Offer  *Offer
}

func NewSuccessRecord(date time.Time, offset int, offer *Offer) DayPriceRecord {
	return DayPriceRecord{
		Date:   date,
		Offset: offset,
		Status: StatusSuccess,
		Price:  offer.Price,
		Offer:  offer,
	}
}

func NewNoOffersRecord(date time.Time, offset int) DayPriceRecord {
	return DayPriceRecord{Date: date, Offset: offset, Status: StatusNoOffers}
}

func NewErrorRecord(date time.Time, offset int) DayPriceRecord {
	return DayPriceRecord{Date: date, Offset: offset, Status: StatusError}
}
