package token

import "strings"

// KeywordID further classifies a Kind == Keyword token. Lookup is
// case-insensitive and ASCII-only: VB6 source may contain identifiers with
// high-bit scalars (Windows-1252 decoded), and those never fold against the
// (ASCII) keyword table.
type KeywordID int

const (
	KwNone KeywordID = iota

	KwDim
	KwReDim
	KwPreserve
	KwPublic
	KwPrivate
	KwFriend
	KwStatic
	KwConst
	KwEnum
	KwType
	KwEnd
	KwDeclare
	KwLib
	KwAlias
	KwProperty
	KwGet
	KwLet
	KwSet
	KwEvent
	KwRaiseEvent
	KwImplements
	KwWithEvents
	KwAs
	KwNew
	KwByVal
	KwByRef
	KwOptional
	KwParamArray

	KwIf
	KwThen
	KwElse
	KwElseIf
	KwSelect
	KwCase
	KwIs
	KwFor
	KwTo
	KwStep
	KwNext
	KwEach
	KwIn
	KwDo
	KwLoop
	KwWhile
	KwUntil
	KwWend
	KwWith
	KwGoTo
	KwGoSub
	KwReturn
	KwOn
	KwError
	KwResume
	KwExit
	KwSub
	KwFunction
	KwCall
	KwExplicit
	KwBase
	KwCompare
	KwBinary
	KwText
	KwDatabase
	KwOption

	KwOpen
	KwClose
	KwInput
	KwOutput
	KwAppend
	KwRandom
	KwAccess
	KwRead
	KwWrite
	KwShared
	KwLock
	KwUnlock
	KwPut
	KwLineInput
	KwPrint
	KwSeek
	KwFileCopy
	KwKill
	KwName
	KwMkDir
	KwRmDir
	KwChDir
	KwChDrive

	KwLoad
	KwUnload
	KwMid
	KwMidB
	KwLSet
	KwRSet
	KwErase
	KwRandomize
	KwStop

	KwInteger
	KwLong
	KwSingle
	KwDouble
	KwBoolean
	KwByte
	KwCurrency
	KwDate
	KwString
	KwVariant
	KwObject
	KwCollection

	KwAnd
	KwOr
	KwNot
	KwXor
	KwEqv
	KwImp
	KwMod
	KwLike
	KwTrue
	KwFalse
	KwNothing
	KwNull
	KwEmpty
	KwMe
)

var keywordNames = map[KeywordID]string{
	KwDim: "Dim", KwReDim: "ReDim", KwPreserve: "Preserve", KwPublic: "Public",
	KwPrivate: "Private", KwFriend: "Friend", KwStatic: "Static", KwConst: "Const",
	KwEnum: "Enum", KwType: "Type", KwEnd: "End", KwDeclare: "Declare",
	KwLib: "Lib", KwAlias: "Alias", KwProperty: "Property", KwGet: "Get",
	KwLet: "Let", KwSet: "Set", KwEvent: "Event", KwRaiseEvent: "RaiseEvent",
	KwImplements: "Implements", KwWithEvents: "WithEvents", KwAs: "As", KwNew: "New",
	KwByVal: "ByVal", KwByRef: "ByRef", KwOptional: "Optional", KwParamArray: "ParamArray",
	KwIf: "If", KwThen: "Then", KwElse: "Else", KwElseIf: "ElseIf",
	KwSelect: "Select", KwCase: "Case", KwIs: "Is", KwFor: "For",
	KwTo: "To", KwStep: "Step", KwNext: "Next", KwEach: "Each",
	KwIn: "In", KwDo: "Do", KwLoop: "Loop", KwWhile: "While",
	KwUntil: "Until", KwWend: "Wend", KwWith: "With", KwGoTo: "GoTo",
	KwGoSub: "GoSub", KwReturn: "Return", KwOn: "On", KwError: "Error",
	KwResume: "Resume", KwExit: "Exit", KwSub: "Sub", KwFunction: "Function",
	KwCall: "Call", KwExplicit: "Explicit", KwBase: "Base", KwCompare: "Compare",
	KwBinary: "Binary", KwText: "Text", KwDatabase: "Database", KwOption: "Option",
	KwOpen: "Open", KwClose: "Close", KwInput: "Input", KwOutput: "Output",
	KwAppend: "Append", KwRandom: "Random", KwAccess: "Access", KwRead: "Read",
	KwWrite: "Write", KwShared: "Shared", KwLock: "Lock", KwUnlock: "Unlock",
	KwPut: "Put", KwLineInput: "Line", KwPrint: "Print",
	KwSeek: "Seek", KwFileCopy: "FileCopy", KwKill: "Kill", KwName: "Name",
	KwMkDir: "MkDir", KwRmDir: "RmDir", KwChDir: "ChDir", KwChDrive: "ChDrive",
	KwLoad: "Load", KwUnload: "Unload",
	KwMid: "Mid", KwMidB: "MidB", KwLSet: "LSet", KwRSet: "RSet",
	KwErase: "Erase", KwRandomize: "Randomize", KwStop: "Stop",
	KwInteger: "Integer", KwLong: "Long", KwSingle: "Single", KwDouble: "Double",
	KwBoolean: "Boolean", KwByte: "Byte", KwCurrency: "Currency", KwDate: "Date",
	KwString: "String", KwVariant: "Variant", KwObject: "Object", KwCollection: "Collection",
	KwAnd: "And", KwOr: "Or", KwNot: "Not", KwXor: "Xor",
	KwEqv: "Eqv", KwImp: "Imp", KwMod: "Mod", KwLike: "Like",
	KwTrue: "True", KwFalse: "False", KwNothing: "Nothing", KwNull: "Null",
	KwEmpty: "Empty", KwMe: "Me",
}

func (k KeywordID) String() string {
	if name, ok := keywordNames[k]; ok {
		return name
	}
	return "Unknown"
}

// keywordTable maps the ASCII-lowercased spelling to its KeywordID. A
// handful of spellings mean different things in different statement
// positions (e.g. "Get" as a Property accessor vs. a file-I/O statement,
// "Set" as an assignment vs. Property Set); the lexer always resolves such
// a spelling to one canonical KeywordID, and the parser disambiguates
// meaning from surrounding context.
var keywordTable map[string]KeywordID

func init() {
	keywordTable = make(map[string]KeywordID, len(keywordNames))
	for id, name := range keywordNames {
		keywordTable[strings.ToLower(name)] = id
	}
}

// LookupKeyword returns the KeywordID for an identifier spelling, folding
// ASCII case only, or KwNone if ident is not a reserved word.
func LookupKeyword(ident string) KeywordID {
	// A reserved word is always pure ASCII; an identifier containing any
	// high-bit scalar can never collide with one, and must not be folded.
	if !isASCII(ident) {
		return KwNone
	}
	if id, ok := keywordTable[strings.ToLower(ident)]; ok {
		return id
	}
	return KwNone
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
