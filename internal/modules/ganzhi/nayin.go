package ganzhi

// NaYin is the sound-element of a pillar pair.
type NaYin struct {
	Name    string
	Element Element
}

// nayinTable holds one entry per consecutive pillar pair of the sixty-cycle.
var nayinTable = [30]NaYin{
	{"海中金", Metal}, {"爐中火", Fire}, {"大林木", Wood}, {"路旁土", Earth}, {"劍鋒金", Metal},
	{"山頭火", Fire}, {"澗下水", Water}, {"城頭土", Earth}, {"白蠟金", Metal}, {"楊柳木", Wood},
	{"泉中水", Water}, {"屋上土", Earth}, {"霹靂火", Fire}, {"松柏木", Wood}, {"長流水", Water},
	{"沙中金", Metal}, {"山下火", Fire}, {"平地木", Wood}, {"壁上土", Earth}, {"金箔金", Metal},
	{"覆燈火", Fire}, {"天河水", Water}, {"大驛土", Earth}, {"釵釧金", Metal}, {"桑柘木", Wood},
	{"大溪水", Water}, {"沙中土", Earth}, {"天上火", Fire}, {"石榴木", Wood}, {"大海水", Water},
}

// NaYin returns the sound-element of the pillar.
func (p Pillar) NaYin() NaYin {
	return nayinTable[p.Index()/2]
}
