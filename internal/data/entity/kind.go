package entity

import "strings"

// Kind is the package variant. It decides the remote path, the booking
// package type, the review entity type and the image directory.
type Kind string

const (
	KindTour  Kind = "tour"
	KindHajj  Kind = "hajj"
	KindUmrah Kind = "umrah"
)

var Kinds = []Kind{KindTour, KindHajj, KindUmrah}

// ParseKind accepts the singular and the remote plural spelling.
func ParseKind(value string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "tour", "tours":
		return KindTour, true
	case "hajj":
		return KindHajj, true
	case "umrah":
		return KindUmrah, true
	}
	return "", false
}

// KindFromBookingType maps "tours"/"hajj"/"umrah" back to a Kind.
func KindFromBookingType(value string) (Kind, bool) {
	for _, k := range Kinds {
		if k.BookingType() == value {
			return k, true
		}
	}
	return "", false
}

func (k Kind) Path() string {
	return "/" + k.BookingType()
}

func (k Kind) BookingType() string {
	switch k {
	case KindTour:
		return "tours"
	case KindHajj:
		return "hajj"
	case KindUmrah:
		return "umrah"
	}
	return string(k)
}

func (k Kind) ReviewEntity() string {
	switch k {
	case KindTour:
		return "Tours"
	case KindHajj:
		return "Hajj"
	case KindUmrah:
		return "Umrah"
	}
	return string(k)
}

func (k Kind) ImageDir() string {
	return k.BookingType()
}

func (k Kind) String() string {
	return string(k)
}
