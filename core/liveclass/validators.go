package liveclass

import "github.com/najahtutors/backend/core"

func (nc *NewLiveClass) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Board = core.CleanString(nc.Board)
	nc.ClassName = core.CleanString(nc.ClassName)
	nc.TimeSlot = core.CleanString(nc.TimeSlot)
	nc.MeetingLink = core.CleanString(nc.MeetingLink)
	return core.Validate.Struct(nc)
}

func (uc *UpdateLiveClass) Validate() error {
	uc.Title = core.CleanString(uc.Title)
	uc.Subject = core.CleanString(uc.Subject)
	uc.Board = core.CleanString(uc.Board)
	uc.ClassName = core.CleanString(uc.ClassName)
	uc.TimeSlot = core.CleanString(uc.TimeSlot)
	uc.MeetingLink = core.CleanString(uc.MeetingLink)
	return core.Validate.Struct(uc)
}
