package domain

type ID string
type Version int

func (vo ID) String() string {
	return string(vo)
}

type Name string
type Label string
type Description string

func (vo Name) String() string {
	return string(vo)
}

func (vo Label) String() string {
	return string(vo)
}
