package types

// FormData carries field-level errors plus the previously submitted values so
// a failed form re-renders with the user's input intact.
type FormData struct {
	Errors map[string]string
	Values map[string]string
}

func NewFormData() FormData {
	return FormData{
		Errors: map[string]string{},
		Values: map[string]string{},
	}
}

// SignInData adds the post-login destination and any flashes to the login
// form payload.
type SignInData struct {
	Form    FormData
	Next    string
	Flashes []string
}

type NoteListData struct {
	User    User
	Notes   []Note
	Flashes []string
	Page    int
	Pages   int
}

func (d NoteListData) HasPrev() bool { return d.Page > 1 }
func (d NoteListData) HasNext() bool { return d.Page < d.Pages }
func (d NoteListData) PrevPage() int { return d.Page - 1 }
func (d NoteListData) NextPage() int { return d.Page + 1 }

type NoteDetailData struct {
	User    User
	Note    Note
	Flashes []string
}

// NoteFormData backs both the create and the edit form.
type NoteFormData struct {
	User    User
	Note    Note
	Form    FormData
	Heading string
	Submit  string
	Action  string
}

type AdminNotesData struct {
	User     User
	Notes    []Note
	Query    string
	Username string
}
