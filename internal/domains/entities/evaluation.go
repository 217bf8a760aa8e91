package entities

type Pv struct {
	Cp    int
	Mate  int
	Moves string
}

type Evaluation struct {
	Fen    string
	Depth  int
	Knodes int
	Pvs    []Pv
}
