package config

var CatalogValue = catalogValue

func (x *Logger) SetForTest(level, format, output string) {
	x.level = level
	x.format = format
	x.output = output
}

func (x *Storage) SetForTest(backend, bucket string) {
	x.backend = backend
	x.bucket = bucket
}

func (x *Notify) SetForTest(token, channel string) {
	x.slackToken = token
	x.slackChannel = channel
}

func (x *Catalog) SetForTest(path string, empty bool) {
	x.path = path
	x.empty = empty
}
