package pagevec

// Feature identifies one structural signal in a Vector.
// Its value is the feature's index in the vector.
type Feature int

// Features in vector order. The order matches the dataset's column order and
// must not change: classifiers trained on existing datasets depend on it.
const (
	HasTitle Feature = iota
	HasInput
	HasButton
	HasImage
	HasSubmit
	HasLink
	HasPassword
	HasEmailInput
	HasHiddenElement
	HasAudio
	HasVideo
	NumberOfInputs
	NumberOfButtons
	NumberOfImages
	NumberOfOption
	NumberOfList
	NumberOfTH
	NumberOfTR
	NumberOfHref
	NumberOfParagraph
	NumberOfScript
	LengthOfTitle
	HasH1
	HasH2
	HasH3
	LengthOfText
	NumberOfClickableButton
	NumberOfA
	NumberOfImg
	NumberOfDiv
	NumberOfFigure
	HasFooter
	HasForm
	HasTextArea
	HasIframe
	HasTextInput
	NumberOfMeta
	HasNav
	HasObject
	HasPicture
	NumberOfSources
	NumberOfSpan
	NumberOfTable
)

// FeatureCount is the length of every Vector.
const FeatureCount = int(NumberOfTable) + 1

// FeatureNames holds the dataset column name of each feature.
var FeatureNames = [FeatureCount]string{
	HasTitle:                "has_title",
	HasInput:                "has_input",
	HasButton:               "has_button",
	HasImage:                "has_image",
	HasSubmit:               "has_submit",
	HasLink:                 "has_link",
	HasPassword:             "has_password",
	HasEmailInput:           "has_email_input",
	HasHiddenElement:        "has_hidden_element",
	HasAudio:                "has_audio",
	HasVideo:                "has_video",
	NumberOfInputs:          "number_of_inputs",
	NumberOfButtons:         "number_of_buttons",
	NumberOfImages:          "number_of_images",
	NumberOfOption:          "number_of_option",
	NumberOfList:            "number_of_list",
	NumberOfTH:              "number_of_th",
	NumberOfTR:              "number_of_tr",
	NumberOfHref:            "number_of_href",
	NumberOfParagraph:       "number_of_paragraph",
	NumberOfScript:          "number_of_script",
	LengthOfTitle:           "length_of_title",
	HasH1:                   "has_h1",
	HasH2:                   "has_h2",
	HasH3:                   "has_h3",
	LengthOfText:            "length_of_text",
	NumberOfClickableButton: "number_of_clickable_button",
	NumberOfA:               "number_of_a",
	NumberOfImg:             "number_of_img",
	NumberOfDiv:             "number_of_div",
	NumberOfFigure:          "number_of_figure",
	HasFooter:               "has_footer",
	HasForm:                 "has_form",
	HasTextArea:             "has_text_area",
	HasIframe:               "has_iframe",
	HasTextInput:            "has_text_input",
	NumberOfMeta:            "number_of_meta",
	HasNav:                  "has_nav",
	HasObject:               "has_object",
	HasPicture:              "has_picture",
	NumberOfSources:         "number_of_sources",
	NumberOfSpan:            "number_of_span",
	NumberOfTable:           "number_of_table",
}

// String returns the feature's column name.
func (f Feature) String() string {
	if f < 0 || int(f) >= FeatureCount {
		return "unknown"
	}
	return FeatureNames[f]
}

// Vector is an ordered sequence of non-negative structural signals,
// one per Feature.
type Vector []int

// NewVector returns a zeroed vector of FeatureCount values.
func NewVector() Vector {
	return make(Vector, FeatureCount)
}

// Get returns the value of f, or 0 when v is too short to hold it.
func (v Vector) Get(f Feature) int {
	if f < 0 || int(f) >= len(v) {
		return 0
	}
	return v[f]
}

// Set stores n as the value of f.
func (v Vector) Set(f Feature, n int) {
	v[f] = n
}

// Flag stores b as a 0/1 presence value of f.
func (v Vector) Flag(f Feature, b bool) {
	if b {
		v[f] = 1
		return
	}
	v[f] = 0
}

// Fit returns a copy of v with exactly FeatureCount values, right-padding
// with zeros or truncating as needed. The bool result reports whether v had
// the wrong length.
func (v Vector) Fit() (Vector, bool) {
	out := NewVector()
	copy(out, v)
	return out, len(v) != FeatureCount
}

// Validate returns an error if v does not have the dataset shape.
func (v Vector) Validate() error {
	if len(v) != FeatureCount {
		return Errorf(EINVALID, "feature vector has %d values, want %d", len(v), FeatureCount)
	}
	for i, n := range v {
		if n < 0 {
			return Errorf(EINVALID, "feature %s is negative: %d", Feature(i), n)
		}
	}
	return nil
}
