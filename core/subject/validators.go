package subject

import "github.com/najahtutors/backend/core"

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Board = core.CleanString(ns.Board)
	ns.ClassName = core.CleanString(ns.ClassName)
	ns.Duration = core.CleanString(ns.Duration)
	return core.Validate.Struct(ns)
}

func (us *UpdateSubject) Validate() error {
	us.Name = core.CleanString(us.Name)
	us.Board = core.CleanString(us.Board)
	us.ClassName = core.CleanString(us.ClassName)
	us.Duration = core.CleanString(us.Duration)
	return core.Validate.Struct(us)
}
