package types

import "time"

// YoungPerson is a resident case file.
type YoungPerson struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	DateOfBirth  time.Time  `json:"dateOfBirth"`
	DateAdmitted *time.Time `json:"dateAdmitted"`

	Gender         *string `json:"gender"`
	LocalAuthority *string `json:"localAuthority"`
	RoomNumber     *string `json:"roomNumber"`
	PhoneNumber    *string `json:"phoneNumber"`

	// Health
	Allergies   *string `json:"allergies"`
	Conditions  *string `json:"conditions"`
	Medications *string `json:"medications"`
	Notes       *string `json:"notes"`

	NextOfKinName  *string `json:"nextOfKinName"`
	NextOfKinPhone *string `json:"nextOfKinPhone"`
	NextOfKinEmail *string `json:"nextOfKinEmail"`

	SocialWorkerName  *string `json:"socialWorkerName"`
	SocialWorkerPhone *string `json:"socialWorkerPhone"`
	SocialWorkerEmail *string `json:"socialWorkerEmail"`

	SchoolName    *string `json:"schoolName"`
	SchoolContact *string `json:"schoolContact"`
	SchoolPhone   *string `json:"schoolPhone"`
	SchoolEmail   *string `json:"schoolEmail"`
	SchoolDays    *string `json:"schoolDays"`

	// CreatedBy references the manager who opened the file. It is a plain
	// reference with no cascade.
	CreatedBy *int      `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// YoungPersonPatch carries the profile fields a caller may change. Nil
// fields are left untouched.
type YoungPersonPatch struct {
	Name         *string
	DateOfBirth  *time.Time
	DateAdmitted *time.Time

	Gender         *string
	LocalAuthority *string
	RoomNumber     *string
	PhoneNumber    *string

	Allergies   *string
	Conditions  *string
	Medications *string
	Notes       *string

	NextOfKinName  *string
	NextOfKinPhone *string
	NextOfKinEmail *string

	SocialWorkerName  *string
	SocialWorkerPhone *string
	SocialWorkerEmail *string

	SchoolName    *string
	SchoolContact *string
	SchoolPhone   *string
	SchoolEmail   *string
	SchoolDays    *string
}

// Apply copies every set field of p onto person.
func (p YoungPersonPatch) Apply(person *YoungPerson) {
	if p.Name != nil {
		person.Name = *p.Name
	}
	if p.DateOfBirth != nil {
		person.DateOfBirth = *p.DateOfBirth
	}
	if p.DateAdmitted != nil {
		person.DateAdmitted = p.DateAdmitted
	}
	setString(&person.Gender, p.Gender)
	setString(&person.LocalAuthority, p.LocalAuthority)
	setString(&person.RoomNumber, p.RoomNumber)
	setString(&person.PhoneNumber, p.PhoneNumber)
	setString(&person.Allergies, p.Allergies)
	setString(&person.Conditions, p.Conditions)
	setString(&person.Medications, p.Medications)
	setString(&person.Notes, p.Notes)
	setString(&person.NextOfKinName, p.NextOfKinName)
	setString(&person.NextOfKinPhone, p.NextOfKinPhone)
	setString(&person.NextOfKinEmail, p.NextOfKinEmail)
	setString(&person.SocialWorkerName, p.SocialWorkerName)
	setString(&person.SocialWorkerPhone, p.SocialWorkerPhone)
	setString(&person.SocialWorkerEmail, p.SocialWorkerEmail)
	setString(&person.SchoolName, p.SchoolName)
	setString(&person.SchoolContact, p.SchoolContact)
	setString(&person.SchoolPhone, p.SchoolPhone)
	setString(&person.SchoolEmail, p.SchoolEmail)
	setString(&person.SchoolDays, p.SchoolDays)
}

// IsEmpty reports whether the patch changes nothing.
func (p YoungPersonPatch) IsEmpty() bool {
	return p.Name == nil && p.DateOfBirth == nil && p.DateAdmitted == nil &&
		p.Gender == nil && p.LocalAuthority == nil && p.RoomNumber == nil && p.PhoneNumber == nil &&
		p.Allergies == nil && p.Conditions == nil && p.Medications == nil && p.Notes == nil &&
		p.NextOfKinName == nil && p.NextOfKinPhone == nil && p.NextOfKinEmail == nil &&
		p.SocialWorkerName == nil && p.SocialWorkerPhone == nil && p.SocialWorkerEmail == nil &&
		p.SchoolName == nil && p.SchoolContact == nil && p.SchoolPhone == nil &&
		p.SchoolEmail == nil && p.SchoolDays == nil
}

func setString(dst **string, value *string) {
	if value == nil {
		return
	}
	v := *value
	*dst = &v
}
