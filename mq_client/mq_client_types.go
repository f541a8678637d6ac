package mq_client

type Exchange struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type Queue struct {
	Name    string `yaml:"name"`
	Durable bool   `yaml:"durable"`
}

type Binding struct {
	Queue      string `yaml:"queue"`
	CleanStart bool   `yaml:"clean_start"`
	Exchange   string `yaml:"exchange"`
}

type Channel struct {
	Prefetch int `yaml:"prefetch"`
}

type MQClientConfig struct {
	Exchange struct {
		Notification Exchange `yaml:"notification"`
		Events       Exchange `yaml:"events"`
		Documents    Exchange `yaml:"documents"`
	}
	Queue struct {
		ReceiptDocument Queue `yaml:"receipt_document"`
		EventsProcessor Queue `yaml:"events_processor"`
		PushDelivery    Queue `yaml:"push_delivery"`
	}
	Binding struct {
		ReceiptDocument Binding `yaml:"receipt_document"`
		EventsProcessor Binding `yaml:"events_processor"`
		PushDelivery    Binding `yaml:"push_delivery"`
	}
	Channel struct {
		ReceiptDocument Channel `yaml:"receipt_document"`
		EventsProcessor Channel `yaml:"events_processor"`
	}
}
