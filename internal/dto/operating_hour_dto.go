package dto

type OperatingHourItem struct {
	DayOfWeek *int   `json:"day_of_week" validate:"required,gte=0,lte=6"`
	OpenTime  string `json:"open_time" validate:"required,hhmm"`
	CloseTime string `json:"close_time" validate:"required,hhmm"`
}

type UpsertOperatingHoursRequest struct {
	Items []OperatingHourItem `json:"items" validate:"required,min=1,max=7,dive"`
}
