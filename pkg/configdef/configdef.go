package configdef

import (
	"errors"
	"fmt"

	"gopkg.in/dealancer/validate.v2"
)

type Values struct {
	Debug           bool   `json:"debug"`
	NodeName        string `json:"node_name" validate:"empty=false"`
	Anonymous       bool   `json:"anonymous"`
	MasterAddress   string `json:"master_address" validate:"empty=false"`
	Host            string `json:"host"`
	InputTopic      string `json:"input_topic" validate:"empty=false"`
	OutputTopic     string `json:"output_topic" validate:"empty=false"`
	QueueSize       int    `json:"queue_size" validate:"gte=1 & lte=1000"`
	PropagateHeader bool   `json:"propagate_header"`
	TestcardFPS     int    `json:"testcard_fps" validate:"gte=0 & lte=60"`
}

func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if v.InputTopic == v.OutputTopic {
		return fmt.Errorf(validationErrorHeader, errors.New("input and output topics must differ"))
	}
	return nil
}
