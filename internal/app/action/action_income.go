package action

type selectIncomeHandler struct{ BaseHandler }

func (selectIncomeHandler) Apply(ac *Context) error {
	cmd := ac.Command.(SelectIncome)
	return rejected(ac.Session.SelectIncome(ac.SeatID, cmd.Index))
}

type autoIncomeHandler struct{ BaseHandler }

func (autoIncomeHandler) Apply(ac *Context) error {
	return rejected(ac.Session.AutoIncome(ac.SeatID))
}

type undoIncomeHandler struct{ BaseHandler }

func (undoIncomeHandler) Apply(ac *Context) error {
	return rejected(ac.Session.UndoIncome(ac.SeatID))
}

type finishIncomeHandler struct{ BaseHandler }

func (finishIncomeHandler) Apply(ac *Context) error {
	return rejected(ac.Session.FinishIncome(ac.SeatID))
}
