package centers

import (
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
)

// WorkingDayInput is one weekday entry of a center's opening hours.
type WorkingDayInput struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// CreateCenterInput is the center creation payload. The image rides in as a
// separate multipart part.
type CreateCenterInput struct {
	Name         string            `json:"name" validate:"required"`
	Address      string            `json:"address" validate:"required"`
	ContactName  *string           `json:"contactName,omitempty"`
	ContactEmail *string           `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactTel   *string           `json:"contactTel,omitempty"`
	CollectorID  *int64            `json:"collectorId,omitempty"`
	WorkingDays  []WorkingDayInput `json:"workingDays,omitempty" validate:"omitempty,dive"`
}

// UpdateCenterInput patches a center. Nil fields are untouched; a non-nil
// WorkingDays replaces the full set.
type UpdateCenterInput struct {
	Name         *string            `json:"name,omitempty"`
	Address      *string            `json:"address,omitempty"`
	ContactName  *string            `json:"contactName,omitempty"`
	ContactEmail *string            `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactTel   *string            `json:"contactTel,omitempty"`
	CollectorID  *int64             `json:"collectorId,omitempty"`
	WorkingDays  *[]WorkingDayInput `json:"workingDays,omitempty"`
}

// AddCollectablesInput lists type names the center accepts.
type AddCollectablesInput struct {
	Names []string `json:"names" validate:"required,min=1,dive,required"`
}

// ScheduleInput is one pickup slot to append.
type ScheduleInput struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required"`
}

// AddSchedulesInput bulk-appends pickup slots.
type AddSchedulesInput struct {
	Schedules []ScheduleInput `json:"schedules" validate:"required,min=1,dive"`
}

type WorkingDayDTO struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ScheduleDTO struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// CenterDTO is the outward center shape. Collects carries type names only.
type CenterDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	ContactName  *string         `json:"contactName,omitempty"`
	ContactEmail *string         `json:"contactEmail,omitempty"`
	ContactTel   *string         `json:"contactTel,omitempty"`
	ImageURL     *string         `json:"imageUrl,omitempty"`
	CollectorID  *int64          `json:"collectorId,omitempty"`
	WorkingDays  []WorkingDayDTO `json:"workingDays"`
	Collects     []string        `json:"collects,omitempty"`
	Schedules    []ScheduleDTO   `json:"schedules,omitempty"`
}

// CentersPageDTO is one page of centers with flat pagination fields.
type CentersPageDTO struct {
	Data []CenterDTO `json:"data"`
	pagination.PageInfo
}

// CollectablesResultDTO reports which type names were linked.
type CollectablesResultDTO struct {
	Message string   `json:"message"`
	Names   []string `json:"names"`
}

func toCenterDTO(center *models.Center) CenterDTO {
	days := make([]WorkingDayDTO, 0, len(center.WorkingDays))
	for _, d := range center.WorkingDays {
		days = append(days, WorkingDayDTO{Day: d.Day, StartTime: d.StartTime, EndTime: d.EndTime})
	}

	var collects []string
	for _, c := range center.Collects {
		collects = append(collects, c.TypeName)
	}

	var schedules []ScheduleDTO
	for _, s := range center.Schedules {
		schedules = append(schedules, ScheduleDTO{ID: s.ID, StartTime: s.StartTime, EndTime: s.EndTime})
	}

	return CenterDTO{
		ID:           center.ID,
		Name:         center.Name,
		Address:      center.Address,
		ContactName:  center.ContactName,
		ContactEmail: center.ContactEmail,
		ContactTel:   center.ContactTel,
		ImageURL:     center.ImageURL,
		CollectorID:  center.CollectorID,
		WorkingDays:  days,
		Collects:     collects,
		Schedules:    schedules,
	}
}
