package service

import (
	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stored documents are the input fields plus the storage-assigned _id.

type instructorDoc struct {
	ID                     primitive.ObjectID `bson:"_id"`
	types.InstructorCreate `bson:",inline"`
}

type studentDoc struct {
	ID                  primitive.ObjectID `bson:"_id"`
	types.StudentCreate `bson:",inline"`
}

type courseDoc struct {
	ID                 primitive.ObjectID `bson:"_id"`
	types.CourseCreate `bson:",inline"`
}

type enrollmentDoc struct {
	ID                     primitive.ObjectID `bson:"_id"`
	types.EnrollmentCreate `bson:",inline"`
}

func decodeDoc[D any](raw bson.Raw) (D, error) {
	var doc D
	err := bson.Unmarshal(raw, &doc)
	return doc, errors.Wrap(err, "decoding document")
}

func decodeDocs[D any](raws []bson.Raw) ([]D, error) {
	docs := make([]D, 0, len(raws))
	for _, raw := range raws {
		doc, err := decodeDoc[D](raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
