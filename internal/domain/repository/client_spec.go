package repository

// ClientSpecKind - тег варианта ClientSpec
type ClientSpecKind int

const (
	// ClientSpecDefault - нулевое значение: ключ из переменной окружения
	// по умолчанию (GOOGLE_API_KEY, если конфигурация не переопределила имя)
	ClientSpecDefault ClientSpecKind = iota

	// ClientSpecEnvVar - ключ из именованной переменной окружения
	ClientSpecEnvVar

	// ClientSpecLiteralKey - ключ задан литералом
	ClientSpecLiteralKey

	// ClientSpecPrebuilt - готовый клиент, передаётся без изменений
	ClientSpecPrebuilt
)

// ClientSpec описывает, как получить аутентифицированный клиент Google API:
// литеральный ключ, имя переменной окружения или уже готовый клиент.
// Значение неизменяемо после создания и передаётся на каждый вызов
type ClientSpec struct {
	kind   ClientSpecKind
	value  string
	client PlacesClient
}

// APIKeySpec - спецификация с литеральным ключом
func APIKeySpec(key string) ClientSpec {
	return ClientSpec{kind: ClientSpecLiteralKey, value: key}
}

// EnvVarSpec - спецификация с именем переменной окружения
func EnvVarSpec(name string) ClientSpec {
	return ClientSpec{kind: ClientSpecEnvVar, value: name}
}

// PrebuiltSpec - спецификация с готовым клиентом; владение и
// потокобезопасность клиента остаются на вызывающей стороне
func PrebuiltSpec(client PlacesClient) ClientSpec {
	return ClientSpec{kind: ClientSpecPrebuilt, client: client}
}

// DefaultClientSpec - спецификация по умолчанию
func DefaultClientSpec() ClientSpec {
	return ClientSpec{kind: ClientSpecDefault}
}

// Kind возвращает тег варианта
func (s ClientSpec) Kind() ClientSpecKind {
	return s.kind
}

// Value возвращает ключ или имя переменной окружения в зависимости от тега
func (s ClientSpec) Value() string {
	return s.value
}

// Client возвращает готовый клиент для варианта ClientSpecPrebuilt
func (s ClientSpec) Client() PlacesClient {
	return s.client
}
