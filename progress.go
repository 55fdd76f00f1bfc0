//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

// Progressor receives coarse progress of a long running walk
type Progressor interface {
	Begin(total int)
	Update(current int)
	End()
}

type nilProgress struct{}

func (np *nilProgress) Begin(int)  {}
func (np *nilProgress) Update(int) {}
func (np *nilProgress) End()       {}

var defaultProgress = Progressor(&nilProgress{})

// SetProgress sets the progress sink used by Spiralize
func SetProgress(prog Progressor) {
	if prog == Progressor(nil) {
		prog = &nilProgress{}
	}
	defaultProgress = prog
}
