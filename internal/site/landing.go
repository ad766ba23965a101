package site

type sectionHeader struct {
	ID       string
	LabelKey string
	TitleKey string
}

type featureInfo struct {
	Icon           string
	TitleKey       string
	DescriptionKey string
}

type statsCard struct {
	ValueKey string
	LabelKey string
}

type featureSection struct {
	ID             string
	Variant        string
	Flipped        bool
	TitleKey       string
	DescriptionKey string
	CTAKey         string
	Features       []featureInfo
	Stats          statsCard
}

type serviceCard struct {
	Icon           string
	TitleKey       string
	DescriptionKey string
	CTAKey         string
	Href           string
}

type landing struct {
	ServicesHeader sectionHeader
	Features       []featureSection
	Services       []serviceCard
	Phone          string
}

func landingSections(phone string) landing {
	return landing{
		ServicesHeader: sectionHeader{
			ID:       "services",
			LabelKey: "sectionHeaders.services.label",
			TitleKey: "sectionHeaders.services.title",
		},
		Features: []featureSection{
			{
				ID:             "photogrammetry",
				Variant:        "grey",
				TitleKey:       "feature.title",
				DescriptionKey: "feature.description",
				CTAKey:         "feature.cta",
				Features: []featureInfo{
					{Icon: "map-pin", TitleKey: "features.precision.title", DescriptionKey: "features.precision.description"},
					{Icon: "cloud", TitleKey: "features.data.title", DescriptionKey: "features.data.description"},
					{Icon: "box", TitleKey: "features.3dmodels.title", DescriptionKey: "features.3dmodels.description"},
				},
				Stats: statsCard{ValueKey: "feature.stats.value", LabelKey: "feature.stats.label"},
			},
			{
				ID:             "fpv",
				Variant:        "white",
				Flipped:        true,
				TitleKey:       "fpvFeature.title",
				DescriptionKey: "fpvFeature.description",
				CTAKey:         "fpvFeature.cta",
				Features: []featureInfo{
					{Icon: "zap", TitleKey: "fpvFeatures.dynamic.title", DescriptionKey: "fpvFeatures.dynamic.description"},
					{Icon: "wind", TitleKey: "fpvFeatures.immersive.title", DescriptionKey: "fpvFeatures.immersive.description"},
					{Icon: "film", TitleKey: "fpvFeatures.cinematic.title", DescriptionKey: "fpvFeatures.cinematic.description"},
				},
				Stats: statsCard{ValueKey: "fpvFeature.stats.value", LabelKey: "fpvFeature.stats.label"},
			},
		},
		Services: []serviceCard{
			{Icon: "settings", TitleKey: "services.industrial.title", DescriptionKey: "services.industrial.description", CTAKey: "services.industrial.cta", Href: "#industrial"},
			{Icon: "video", TitleKey: "services.video.title", DescriptionKey: "services.video.description", CTAKey: "services.video.cta", Href: "#video"},
			{Icon: "sprout", TitleKey: "services.agriculture.title", DescriptionKey: "services.agriculture.description", CTAKey: "services.agriculture.cta", Href: "#agriculture"},
		},
		Phone: phone,
	}
}
