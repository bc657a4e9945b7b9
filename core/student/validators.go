package student

import "github.com/najahtutors/backend/core"

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.Board = core.CleanString(ns.Board)
	ns.ClassName = core.CleanString(ns.ClassName)
	return core.Validate.Struct(ns)
}

func (us *UpdateStudent) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Phone = core.CleanString(us.Phone)
	us.Board = core.CleanString(us.Board)
	us.ClassName = core.CleanString(us.ClassName)
	return core.Validate.Struct(us)
}
