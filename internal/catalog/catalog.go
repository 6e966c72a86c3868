package catalog

import (
	"time"
)

// WorkingHours describes the weekly availability window of one doctor.
// Start is inclusive and End exclusive, both "15:04" labels.
type WorkingHours struct {
	Days  []time.Weekday
	Start string
	End   string
}

// Catalog is the static mapping of departments to doctors plus each
// doctor's weekly slot template. It never mutates after construction and is
// safe to share across goroutines without synchronization.
type Catalog struct {
	departments map[string][]string
	schedules   map[string]WorkingHours
	slots       []string
}

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// defaultHours applies to doctors without an explicit schedule entry.
var defaultHours = WorkingHours{Days: weekdays, Start: "09:00", End: "17:00"}

// New builds the hospital's catalog.
func New() *Catalog {
	return &Catalog{
		departments: map[string][]string{
			"Cardiology":       {"Dr. Harsh Sharma"},
			"Pediatrics":       {"Dr. Arjun Gupta"},
			"Orthopedics":      {"Dr. Sameer Khan"},
			"Neurology":        {"Dr. Ananya Reddy"},
			"Oncology":         {"Dr. Fatima Ahmed"},
			"Dermatology":      {"Dr. Meera Desai", "Dr. Rohit Malhotra"},
			"General Surgery":  {"Dr. Vikram Singh", "Dr. Anjali Mehta"},
			"General Medicine": {"Dr. Rajesh Kumar", "Dr. Kavita Joshi", "Dr. Suresh Iyer"},
			"Gastroenterology": {"Dr. Anil Verma"},
			"Nephrology":       {"Dr. Pooja Nair"},
			"OB-GYN":           {"Dr. Sneha Pillai", "Dr. Ritu Kapoor"},
			"Ophthalmology":    {"Dr. Manish Agarwal"},
			"ENT":              {"Dr. Deepak Rao"},
			"Psychiatry":       {"Dr. Shalini Gupta", "Dr. Aryan Choudhury"},
			"Pulmonology":      {"Dr. Karan Bhatia"},
			"Endocrinology":    {"Dr. Nisha Patel"},
			"Urology":          {"Dr. Abhishek Jain"},
			"Rheumatology":     {"Dr. Priyanka Sharma"},
		},
		schedules: map[string]WorkingHours{
			"Dr. Harsh Sharma":    {Days: weekdays, Start: "09:00", End: "17:00"},
			"Dr. Arjun Gupta":     {Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, Start: "10:00", End: "18:00"},
			"Dr. Sameer Khan":     {Days: []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}, Start: "08:00", End: "16:00"},
			"Dr. Ananya Reddy":    {Days: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday}, Start: "11:00", End: "19:00"},
			"Dr. Fatima Ahmed":    {Days: weekdays, Start: "09:00", End: "17:00"},
			"Dr. Meera Desai":     {Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, Start: "09:00", End: "17:00"},
			"Dr. Rohit Malhotra":  {Days: []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}, Start: "10:00", End: "16:00"},
			"Dr. Vikram Singh":    {Days: weekdays, Start: "07:00", End: "15:00"},
			"Dr. Anjali Mehta":    {Days: []time.Weekday{time.Tuesday, time.Wednesday, time.Friday}, Start: "09:00", End: "17:00"},
			"Dr. Rajesh Kumar":    {Days: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}, Start: "08:00", End: "14:00"},
			"Dr. Kavita Joshi":    {Days: []time.Weekday{time.Monday, time.Wednesday, time.Thursday, time.Friday}, Start: "14:00", End: "20:00"},
			"Dr. Suresh Iyer":     {Days: []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}, Start: "09:00", End: "15:00"},
			"Dr. Anil Verma":      {Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, Start: "10:00", End: "18:00"},
			"Dr. Pooja Nair":      {Days: []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}, Start: "09:00", End: "16:00"},
			"Dr. Sneha Pillai":    {Days: weekdays, Start: "09:00", End: "17:00"},
			"Dr. Ritu Kapoor":     {Days: []time.Weekday{time.Monday, time.Wednesday, time.Thursday}, Start: "10:00", End: "18:00"},
			"Dr. Manish Agarwal":  {Days: []time.Weekday{time.Monday, time.Tuesday, time.Thursday, time.Friday}, Start: "08:00", End: "16:00"},
			"Dr. Deepak Rao":      {Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, Start: "09:00", End: "17:00"},
			"Dr. Shalini Gupta":   {Days: weekdays, Start: "10:00", End: "18:00"},
			"Dr. Aryan Choudhury": {Days: []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}, Start: "11:00", End: "17:00"},
			"Dr. Karan Bhatia":    {Days: []time.Weekday{time.Monday, time.Wednesday, time.Friday}, Start: "09:00", End: "16:00"},
			"Dr. Nisha Patel":     {Days: []time.Weekday{time.Tuesday, time.Thursday}, Start: "10:00", End: "17:00"},
			"Dr. Abhishek Jain":   {Days: []time.Weekday{time.Monday, time.Tuesday, time.Thursday}, Start: "08:00", End: "15:00"},
			"Dr. Priyanka Sharma": {Days: []time.Weekday{time.Wednesday, time.Friday}, Start: "10:00", End: "16:00"},
		},
		slots: []string{
			"07:00", "07:30", "08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
			"11:00", "11:30", "12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
			"15:00", "15:30", "16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
			"19:00", "19:30",
		},
	}
}

// Departments returns a copy of the department to doctors mapping.
func (c *Catalog) Departments() map[string][]string {
	out := make(map[string][]string, len(c.departments))
	for dep, doctors := range c.departments {
		out[dep] = append([]string(nil), doctors...)
	}
	return out
}

// DoctorsIn returns the ordered doctor list of a department.
func (c *Catalog) DoctorsIn(department string) ([]string, bool) {
	doctors, ok := c.departments[department]
	if !ok {
		return nil, false
	}
	return append([]string(nil), doctors...), true
}

// HasDepartment reports whether the department exists.
func (c *Catalog) HasDepartment(department string) bool {
	_, ok := c.departments[department]
	return ok
}

// HasDoctor reports whether the doctor belongs to the department.
func (c *Catalog) HasDoctor(department, doctor string) bool {
	for _, d := range c.departments[department] {
		if d == doctor {
			return true
		}
	}
	return false
}

// Hours returns the doctor's weekly availability window.
func (c *Catalog) Hours(doctor string) WorkingHours {
	if hours, ok := c.schedules[doctor]; ok {
		return hours
	}
	return defaultHours
}

// SlotsFor returns the bookable time labels for a doctor on a calendar date,
// in template order. The result is empty on the doctor's off days and for
// unparseable dates.
func (c *Catalog) SlotsFor(doctor, date string) []string {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}

	hours := c.Hours(doctor)
	worksToday := false
	for _, wd := range hours.Days {
		if wd == day.Weekday() {
			worksToday = true
			break
		}
	}
	if !worksToday {
		return nil
	}

	var out []string
	for _, slot := range c.slots {
		if hours.Start <= slot && slot < hours.End {
			out = append(out, slot)
		}
	}
	return out
}
