package config

import "github.com/tauraamui/graydaemon/pkg/configdef"

type defaultSettingKey uint

const (
	NODENAME        defaultSettingKey = 0x0
	MASTERADDRESS   defaultSettingKey = 0x1
	INPUTTOPIC      defaultSettingKey = 0x2
	OUTPUTTOPIC     defaultSettingKey = 0x3
	QUEUESIZE       defaultSettingKey = 0x4
	PROPAGATEHEADER defaultSettingKey = 0x5
	ANONYMOUS       defaultSettingKey = 0x6
)

var defaultSettings = map[defaultSettingKey]interface{}{
	NODENAME:        "image_converter",
	MASTERADDRESS:   "127.0.0.1:11311",
	INPUTTOPIC:      "/camera/color/image_raw",
	OUTPUTTOPIC:     "/camera/color/image_raw_grayscale",
	QUEUESIZE:       10,
	PROPAGATEHEADER: true,
	ANONYMOUS:       true,
}

func defaultValues() configdef.Values {
	return configdef.Values{
		NodeName:        defaultSettings[NODENAME].(string),
		Anonymous:       defaultSettings[ANONYMOUS].(bool),
		MasterAddress:   defaultSettings[MASTERADDRESS].(string),
		InputTopic:      defaultSettings[INPUTTOPIC].(string),
		OutputTopic:     defaultSettings[OUTPUTTOPIC].(string),
		QueueSize:       defaultSettings[QUEUESIZE].(int),
		PropagateHeader: defaultSettings[PROPAGATEHEADER].(bool),
	}
}
