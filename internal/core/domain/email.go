package domain

// Email is an outbound message handed to the mail provider.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MemorialForm is the submitted fd-form payload, persisted verbatim as the
// memorial_form_data metadata entry.
type MemorialForm struct {
	Director struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"director"`
	FamilyMember struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		DOB       string `json:"dob"`
	} `json:"familyMember"`
	Deceased struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		DOB       string `json:"dob"`
		DOP       string `json:"dop"`
	} `json:"deceased"`
	Contact struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"contact"`
	Memorial struct {
		LocationName    string `json:"locationName"`
		LocationAddress string `json:"locationAddress"`
		Date            string `json:"date"`
		Time            string `json:"time"`
	} `json:"memorial"`
}
