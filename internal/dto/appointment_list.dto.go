package dto

type AppointmentListDTO struct {
	ID            string `json:"id"`
	AppointmentNo string `json:"appointment_no"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	Duration      int    `json:"estimated_duration"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	PatientName   string `json:"patient_name"`
	DoctorName    string `json:"doctor_name"`
}
