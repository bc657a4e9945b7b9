package enrollment

import "github.com/najahtutors/backend/core"

func (me *MarketingEnrollment) Validate() error {
	me.StudentName = core.CleanString(me.StudentName)
	me.ParentName = core.CleanString(me.ParentName)
	me.Email = core.CleanString(me.Email, true /* lower */)
	me.Phone = core.CleanString(me.Phone)
	me.Board = core.CleanString(me.Board)
	me.ClassName = core.CleanString(me.ClassName)
	return core.Validate.Struct(me)
}
