package domain

type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     Name    `json:"name"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
}

type Name struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type Address struct {
	Geolocation Geolocation `json:"geolocation"`
	City        string      `json:"city"`
	Street      string      `json:"street"`
	Number      int         `json:"number"`
	Zipcode     string      `json:"zipcode"`
}

// Geolocation coordinates arrive as strings from the remote API.
type Geolocation struct {
	Lat  string `json:"lat"`
	Long string `json:"long"`
}
