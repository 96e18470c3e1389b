package search

// Room is one room type record as returned by the rooms GraphQL query.
type Room struct {
	RoomTypeID     int         `json:"roomTypeID"`
	RoomTypeName   string      `json:"roomTypeName"`
	Price          float64     `json:"price"`
	Quantity       int         `json:"quantity"`
	NumberOfGuests int         `json:"numberOfGuests"`
	Description    string      `json:"description,omitempty"`
	Images         []RoomImage `json:"images,omitempty"`
	Hotel          *RoomHotel  `json:"hotel"`
}

type RoomImage struct {
	ImageID  int    `json:"imageID"`
	ImageURL string `json:"imageUrl"`
}

// RoomHotel is the hotel nested in each room record.
type RoomHotel struct {
	HotelID       int      `json:"hotelID"`
	HotelName     string   `json:"hotelName"`
	LogoURL       string   `json:"logoUrl,omitempty"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	HotelRate     float64  `json:"hotelRate"`
	NumberOfRates int      `json:"numberOfRates"`
	Description   string   `json:"description,omitempty"`
	Address       string   `json:"address,omitempty"`
	PhoneNumber   string   `json:"phoneNumber,omitempty"`
	Email         string   `json:"email,omitempty"`
	Website       string   `json:"website,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	CheckInTime   string   `json:"checkInTime,omitempty"`
	CheckOutTime  string   `json:"checkOutTime,omitempty"`
}

// Hotel groups every room type offered by one hotel.
type Hotel struct {
	HotelID       int        `json:"hotelID"`
	HotelName     string     `json:"hotelName"`
	City          string     `json:"city"`
	Country       string     `json:"country"`
	HotelRate     float64    `json:"hotelRate"`
	Image         string     `json:"image,omitempty"`
	Description   string     `json:"description,omitempty"`
	Address       string     `json:"address,omitempty"`
	PhoneNumber   string     `json:"phoneNumber,omitempty"`
	Email         string     `json:"email,omitempty"`
	Website       string     `json:"website,omitempty"`
	Amenities     []string   `json:"amenities,omitempty"`
	CheckInTime   string     `json:"checkInTime,omitempty"`
	CheckOutTime  string     `json:"checkOutTime,omitempty"`
	NumberOfRates int        `json:"numberOfRates"`
	RoomTypes     []RoomType `json:"roomTypes"`
}

type RoomType struct {
	RoomTypeID     int         `json:"roomTypeID"`
	RoomTypeName   string      `json:"roomTypeName"`
	Capacity       int         `json:"capacity"`
	AvailableRooms int         `json:"availableRooms"`
	Price          float64     `json:"price"`
	Description    string      `json:"description,omitempty"`
	Images         []RoomImage `json:"images,omitempty"`
}

// MergeRooms groups rooms by hotel ID in the order hotels are first seen.
// Hotel details come from the first room of each hotel. Rooms without a
// hotel end up together under hotel ID 0.
func MergeRooms(rooms []Room) []Hotel {
	index := make(map[int]int)
	hotels := make([]Hotel, 0)

	for _, r := range rooms {
		h := RoomHotel{}
		if r.Hotel != nil {
			h = *r.Hotel
		}

		i, ok := index[h.HotelID]
		if !ok {
			i = len(hotels)
			index[h.HotelID] = i
			hotels = append(hotels, Hotel{
				HotelID:       h.HotelID,
				HotelName:     h.HotelName,
				City:          h.City,
				Country:       h.Country,
				HotelRate:     h.HotelRate,
				Image:         h.LogoURL,
				Description:   h.Description,
				Address:       h.Address,
				PhoneNumber:   h.PhoneNumber,
				Email:         h.Email,
				Website:       h.Website,
				Amenities:     h.Amenities,
				CheckInTime:   h.CheckInTime,
				CheckOutTime:  h.CheckOutTime,
				NumberOfRates: h.NumberOfRates,
				RoomTypes:     []RoomType{},
			})
		}

		hotels[i].RoomTypes = append(hotels[i].RoomTypes, RoomType{
			RoomTypeID:     r.RoomTypeID,
			RoomTypeName:   r.RoomTypeName,
			Capacity:       r.NumberOfGuests,
			AvailableRooms: r.Quantity,
			Price:          r.Price,
			Description:    r.Description,
			Images:         r.Images,
		})
	}
	return hotels
}

// LowestPrice is the cheapest room type of h, or 0 when it has none.
func (h Hotel) LowestPrice() float64 {
	if len(h.RoomTypes) == 0 {
		return 0
	}
	low := h.RoomTypes[0].Price
	for _, rt := range h.RoomTypes[1:] {
		if rt.Price < low {
			low = rt.Price
		}
	}
	return low
}
