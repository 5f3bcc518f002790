package ast

type (
	FileID      uint32
	DeclID      uint32
	TypeID      uint32
	ParamID     uint32
	TypeParamID uint32
)

const (
	NoFileID      FileID      = 0
	NoDeclID      DeclID      = 0
	NoTypeID      TypeID      = 0
	NoParamID     ParamID     = 0
	NoTypeParamID TypeParamID = 0
)

func (id FileID) IsValid() bool      { return id != NoFileID }
func (id DeclID) IsValid() bool      { return id != NoDeclID }
func (id TypeID) IsValid() bool      { return id != NoTypeID }
func (id ParamID) IsValid() bool     { return id != NoParamID }
func (id TypeParamID) IsValid() bool { return id != NoTypeParamID }
