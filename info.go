package main

// group tags used in every derived file name
const (
	fgTag = "fg"
	bgTag = "bg"
)

type Info struct {
	OutRoot string
	Paired  bool
	Groups  []*Group // fg first, then bg
}

// Group is one condition: immunoprecipitated (fg) or input (bg).
type Group struct {
	Tag     string
	Name    string
	Samples []*Sample
	Reads   int64
}

type Sample struct {
	Index int
	Fq1   string
	Fq2   string
	Job   string // <outRoot>.<tag>.<index>
}

func newGroup(tag, name, outRoot string, fq1, fq2 []string) *Group {
	group := &Group{
		Tag:  tag,
		Name: name,
	}
	for i, fq := range fq1 {
		sample := &Sample{
			Index: i,
			Fq1:   fq,
			Job:   jobRoot(outRoot, tag, i),
		}
		if i < len(fq2) {
			sample.Fq2 = fq2[i]
		}
		group.Samples = append(group.Samples, sample)
	}
	return group
}

func newInfo(cfg *Config) *Info {
	return &Info{
		OutRoot: cfg.OutRoot,
		Paired:  cfg.Paired,
		Groups: []*Group{
			newGroup(fgTag, "IP", cfg.OutRoot, cfg.FgSamples, cfg.FgSamples2),
			newGroup(bgTag, "Input", cfg.OutRoot, cfg.BgSamples, cfg.BgSamples2),
		},
	}
}

func (info *Info) Group(tag string) *Group {
	for _, group := range info.Groups {
		if group.Tag == tag {
			return group
		}
	}
	return nil
}
