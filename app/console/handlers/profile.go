package handlers

func (a *App) ProfileShow() {
	name, title := a.prefs.Name, a.prefs.Title
	if name == "" {
		name = "(미설정)"
	}
	if title == "" {
		title = "(미설정)"
	}
	a.printf("이름: %s\n직분: %s\n", name, title)
}

// ProfileSet changes the name and title used for posts and chat. Nil leaves a value as is.
func (a *App) ProfileSet(name, title *string) error {
	if name != nil {
		a.prefs.Name = *name
	}
	if title != nil {
		a.prefs.Title = *title
	}
	if err := a.prefs.Save(); err != nil {
		return err
	}
	a.ProfileShow()
	return nil
}
