package validators

import "go.mongodb.org/mongo-driver/bson"

var TenantValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"tenant_id", "name", "email", "phone", "booking_limit", "is_active", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":             bson.M{"bsonType": "objectId"},
			"tenant_id":       bson.M{"bsonType": "string", "minLength": 1, "maxLength": 50},
			"name":            bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"email":           bson.M{"bsonType": "string"},
			"phone":           bson.M{"bsonType": "string", "pattern": `^\+[1-9]\d{1,14}$`},
			"tower":           bson.M{"bsonType": "string", "maxLength": 50},
			"unit":            bson.M{"bsonType": "string", "maxLength": 50},
			"booking_limit":   bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
			"is_active":       bson.M{"bsonType": "bool"},
			"profile_picture": bson.M{"bsonType": "string"},
			"created_at":      bson.M{"bsonType": "date"},
			"updated_at":      bson.M{"bsonType": "date"},
		},
	},
}
