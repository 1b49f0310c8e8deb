package models

// Entity names a record kind of the component hierarchy. The names are used
// in event types and conflict messages.
type Entity string

const (
	EntityCategory     Entity = "component_category"
	EntityType         Entity = "component_type"
	EntitySubtype      Entity = "component_subtype"
	EntityModel        Entity = "component_model"
	EntityComponent    Entity = "component"
	EntityInstallation Entity = "component_installation"
)
