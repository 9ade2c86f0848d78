package service

import (
	"fmt"
	"strings"

	"github.com/tributestream/livestream-api/internal/core/domain"
)

// memorialRequestEmail is the staff notification generated from a submitted
// memorial form.
func memorialRequestEmail(form domain.MemorialForm) domain.Email {
	text := strings.TrimSpace(fmt.Sprintf(`
New Memorial Request Details:

Director Information:
- Name: %s %s

Family Member Information:
- Name: %s %s
- Date of Birth: %s

Deceased Information:
- Name: %s %s
- Date of Birth: %s
- Date of Passing: %s

Contact Information:
- Email: %s
- Phone: %s

Memorial Details:
- Location: %s
- Address: %s
- Date: %s
- Time: %s`,
		form.Director.FirstName, form.Director.LastName,
		form.FamilyMember.FirstName, form.FamilyMember.LastName, form.FamilyMember.DOB,
		form.Deceased.FirstName, form.Deceased.LastName, form.Deceased.DOB, form.Deceased.DOP,
		form.Contact.Email, form.Contact.Phone,
		form.Memorial.LocationName, form.Memorial.LocationAddress,
		form.Memorial.Date, form.Memorial.Time))

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h1>New Memorial Request</h1>
<h2>Director Information</h2>
<p><strong>Name:</strong> %s %s</p>
<h2>Family Member Information</h2>
<p><strong>Name:</strong> %s %s<br><strong>Date of Birth:</strong> %s</p>
<h2>Deceased Information</h2>
<p><strong>Name:</strong> %s %s<br><strong>Date of Birth:</strong> %s<br><strong>Date of Passing:</strong> %s</p>
<h2>Contact Information</h2>
<p><strong>Email:</strong> %s<br><strong>Phone:</strong> %s</p>
<h2>Memorial Details</h2>
<p><strong>Location:</strong> %s<br><strong>Address:</strong> %s<br><strong>Date:</strong> %s<br><strong>Time:</strong> %s</p>
</div>`,
		form.Director.FirstName, form.Director.LastName,
		form.FamilyMember.FirstName, form.FamilyMember.LastName, form.FamilyMember.DOB,
		form.Deceased.FirstName, form.Deceased.LastName, form.Deceased.DOB, form.Deceased.DOP,
		form.Contact.Email, form.Contact.Phone,
		form.Memorial.LocationName, form.Memorial.LocationAddress,
		form.Memorial.Date, form.Memorial.Time)

	return domain.Email{
		Subject: "New Memorial Request",
		Text:    text,
		HTML:    html,
	}
}

// welcomeEmail carries the generated credentials to the family member who
// just had an account created for them.
func welcomeEmail(firstName, lastName, email, password string) domain.Email {
	text := strings.TrimSpace(fmt.Sprintf(`
Dear %s %s,

Welcome to Tributestream. An account has been created for you so you can
manage your loved one's tribute page.

Your login details:
- Email: %s
- Password: %s

Please log in and change your password at your earliest convenience.

Best regards,
The Tributestream Team`, firstName, lastName, email, password))

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Welcome to Tributestream</h2>
<p>Dear %s %s,</p>
<p>An account has been created for you so you can manage your loved one's tribute page.</p>
<h3>Your login details:</h3>
<ul><li><strong>Email:</strong> %s</li><li><strong>Password:</strong> %s</li></ul>
<p>Please log in and change your password at your earliest convenience.</p>
<p>Best regards,<br>The Tributestream Team</p>
</div>`, firstName, lastName, email, password)

	return domain.Email{
		Subject: "Welcome to Tributestream",
		Text:    text,
		HTML:    html,
	}
}
